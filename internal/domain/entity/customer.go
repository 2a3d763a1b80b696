package entity

import "time"

// Customer representa un cliente del punto de venta.
// Phone es único; Email es opcional pero, si existe, también es único.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// HasEmail indica si el cliente puede recibir recibos y alertas.
func (c *Customer) HasEmail() bool {
	return c != nil && c.Email != ""
}

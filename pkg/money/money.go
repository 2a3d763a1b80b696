// Package money formatea montos para mensajes y recibos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format devuelve el monto con dos decimales, precedido por symbol.
func Format(symbol string, amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return symbol + printer.Sprintf("%.2f", f)
}

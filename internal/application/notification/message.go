package notification

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/pkg/money"
)

// RenderMessage texto de la alerta de bajada de precio.
func RenderMessage(customerName, productName string, oldPrice, newPrice decimal.Decimal, currency string) string {
	return fmt.Sprintf(
		"Hello %s,\n\nGood news! The price of %s has dropped.\nOld Price: %s\nNew Price: %s\n\nVisit again to grab the deal! 🔥\n",
		customerName, productName, money.Format(currency, oldPrice), money.Format(currency, newPrice),
	)
}

// messageHTML convierte el texto plano guardado en cuerpo HTML.
func messageHTML(msg string) string {
	return "<p>" + strings.ReplaceAll(html.EscapeString(msg), "\n", "<br>") + "</p>"
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartpos-api/internal/application/billing"
	"github.com/jhoicas/smartpos-api/internal/application/inventory"
	"github.com/jhoicas/smartpos-api/internal/application/notification"
	"github.com/jhoicas/smartpos-api/internal/application/pricing"
	"github.com/jhoicas/smartpos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	RestockUC     *inventory.RestockUseCase
	CustomerUC    *billing.CustomerUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	PriceLedger   *pricing.LedgerUseCase
	ScanDrops     *pricing.ScanDropsUseCase
	Notifications *notification.GenerateUseCase
	Dispatch      *notification.DispatchUseCase
	JWTSecret     string // vacío = sin autenticación (desarrollo)
	JWTIssuer     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sin secret configurado auth y role no filtran nada.
	noop := func(c *fiber.Ctx) error { return c.Next() }
	auth := fiber.Handler(noop)
	role := func(...string) fiber.Handler { return noop }
	if deps.JWTSecret != "" {
		auth = AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
		role = RequireRole
	}
	protected := api.Group("/", auth)
	anyRole := role(RoleAdmin, RoleSeller)
	adminOnly := role(RoleAdmin)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.RestockUC)
	products := protected.Group("/products")
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id/restock", adminOnly, productHandler.Restock)
	products.Delete("/:id", adminOnly, productHandler.Deactivate)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Post("/", anyRole, customerHandler.Create)
	customers.Get("/", anyRole, customerHandler.List)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice)
	invoices := protected.Group("/invoices")
	invoices.Post("/", anyRole, invoiceHandler.Create)
	invoices.Get("/:id", anyRole, invoiceHandler.GetByID)

	// Pricing y bajadas de precio
	pricingHandler := NewPricingHandler(deps.PriceLedger, deps.ScanDrops)
	protected.Post("/pricing/update", adminOnly, pricingHandler.UpdatePrice)
	protected.Get("/pricing/:productId/history", anyRole, pricingHandler.History)
	protected.Get("/price-drops/product/:productId", adminOnly, pricingHandler.ScanDrops)

	// Notifications
	notificationHandler := NewNotificationHandler(deps.Notifications, deps.Dispatch)
	notifications := protected.Group("/notifications")
	notifications.Post("/generate/product/:productId", adminOnly, notificationHandler.Generate)
	notifications.Get("/", adminOnly, notificationHandler.List)
	notifications.Post("/send/pending", adminOnly, notificationHandler.SendPending)
}

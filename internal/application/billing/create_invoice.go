package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/pkg/logger"
)

// CreateInvoiceUseCase crea una factura y descuenta el inventario en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	receipts     ReceiptScheduler
	metrics      ports.Metrics
	log          *logger.Logger
	now          func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso. receipts puede ser nil (sin recibos por correo).
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	receipts ReceiptScheduler,
	metrics ports.Metrics,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		receipts:     receipts,
		metrics:      metrics,
		log:          log.Component("billing"),
		now:          time.Now,
	}
}

// reserved resultado de la reserva de una línea.
type reserved struct {
	product *entity.Product
	item    *entity.InvoiceItem
}

// CreateInvoice valida, reserva cada línea con el descuento condicional, guarda cabecera y detalles
// y confirma. Cualquier error deshace todas las reservas.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	resp, err := uc.createInvoice(ctx, in)
	if err != nil {
		uc.metrics.InvoiceRejected(rejectReason(err))
		return nil, err
	}
	return resp, nil
}

func (uc *CreateInvoiceUseCase) createInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.InvalidInput("la factura debe tener al menos un ítem")
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.InvalidInput("product_id es obligatorio")
		}
		if item.Quantity <= 0 {
			return nil, domain.InvalidInput("cantidad inválida para el producto %s", item.ProductID)
		}
	}

	// Cliente opcional
	var customer *entity.Customer
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("get customer: %w", err)
		}
		if c == nil {
			return nil, domain.NewNotFound(domain.EntityCustomer, in.CustomerID)
		}
		customer = c
	}

	// Validar productos (fuera de la tx, solo lectura). El stock lo decide la reserva.
	for _, item := range in.Items {
		p, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if p == nil || !p.Active {
			return nil, domain.NewNotFound(domain.EntityProduct, item.ProductID)
		}
	}

	now := uc.now().UTC()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		CreatedAt:  now,
	}
	// Las filas se bloquean en orden de product_id; las líneas conservan el orden de la petición.
	order := make([]int, len(in.Items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return in.Items[order[a]].ProductID < in.Items[order[b]].ProductID
	})
	var lines []reserved

	err := uc.txRunner.RunBilling(ctx, func(
		stockRepo repository.StockRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		lines = make([]reserved, len(in.Items))
		total := decimal.Zero
		// 1) Reserva condicional por línea; el precio de compra es el observado en la reserva.
		for _, i := range order {
			item := in.Items[i]
			p, ok, err := stockRepo.Reserve(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("reserve stock: %w", err)
			}
			if !ok {
				return &domain.InsufficientStockError{ProductID: item.ProductID, Requested: item.Quantity}
			}
			price := entity.NormalizePrice(p.Price)
			lineTotal := entity.ComputeLineTotal(item.Quantity, price)
			total = total.Add(lineTotal)
			lines[i] = reserved{
				product: p,
				item: &entity.InvoiceItem{
					ID:              uuid.New().String(),
					InvoiceID:       inv.ID,
					LineNo:          i + 1,
					ProductID:       item.ProductID,
					Quantity:        item.Quantity,
					PriceAtPurchase: price,
					LineTotal:       lineTotal,
				},
			}
		}
		inv.TotalAmount = total

		// 2) Cabecera y detalles
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, l := range lines {
			if err := invoiceRepo.CreateItem(ctx, l.item); err != nil {
				return err
			}
		}

		// 3) total_amount == Σ line_total de lo guardado
		stored, err := invoiceRepo.SumLineTotals(ctx, inv.ID)
		if err != nil {
			return err
		}
		if !stored.Equal(inv.TotalAmount) {
			return fmt.Errorf("%w: total %s != suma de líneas %s", domain.ErrIntegrityViolation, inv.TotalAmount, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.InvoiceCreated(inv.TotalAmount)
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("customer_id", inv.CustomerID).
		Str("total", inv.TotalAmount.StringFixed(entity.PriceScale)).
		Int("items", len(lines)).
		Msg("factura confirmada")

	resp := toInvoiceResponse(inv, customer, lines)
	if customer.HasEmail() {
		uc.scheduleReceipt(inv, customer, lines)
	}
	return resp, nil
}

// scheduleReceipt encola el recibo; nunca afecta a la factura ya confirmada.
func (uc *CreateInvoiceUseCase) scheduleReceipt(inv *entity.Invoice, customer *entity.Customer, lines []reserved) {
	if uc.receipts == nil {
		return
	}
	data := ports.ReceiptData{
		InvoiceID:     inv.ID,
		CreatedAt:     inv.CreatedAt,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Total:         inv.TotalAmount,
	}
	for _, l := range lines {
		data.Lines = append(data.Lines, ports.ReceiptLine{
			SKU:       l.product.SKU,
			Name:      l.product.Name,
			Quantity:  l.item.Quantity,
			UnitPrice: l.item.PriceAtPurchase,
			LineTotal: l.item.LineTotal,
		})
	}
	if !uc.receipts.Schedule(data) {
		uc.metrics.ReceiptResult(ReceiptDropped)
		uc.log.Warn().Str("invoice_id", inv.ID).Msg("recibo descartado: cola llena o cerrada")
	}
}

// GetInvoice obtiene una factura con su detalle.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewNotFound(domain.EntityInvoice, id)
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if inv.HasCustomer() {
		if customer, err = uc.customerRepo.GetByID(ctx, inv.CustomerID); err != nil {
			return nil, err
		}
	}
	lines := make([]reserved, 0, len(items))
	for _, it := range items {
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			p = &entity.Product{ID: it.ProductID}
		}
		lines = append(lines, reserved{product: p, item: it})
	}
	return toInvoiceResponse(inv, customer, lines), nil
}

func toInvoiceResponse(inv *entity.Invoice, customer *entity.Customer, lines []reserved) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:          inv.ID,
		CustomerID:  inv.CustomerID,
		TotalAmount: inv.TotalAmount,
		CreatedAt:   inv.CreatedAt,
		Items:       make([]dto.InvoiceItemResponse, 0, len(lines)),
	}
	if customer != nil {
		out.CustomerName = customer.Name
	}
	for _, l := range lines {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:              l.item.ID,
			ProductID:       l.item.ProductID,
			ProductName:     l.product.Name,
			SKU:             l.product.SKU,
			Quantity:        l.item.Quantity,
			PriceAtPurchase: l.item.PriceAtPurchase,
			LineTotal:       l.item.LineTotal,
		})
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrIntegrityViolation):
		return "integrity_violation"
	default:
		return "error"
	}
}

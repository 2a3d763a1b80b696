package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// DropCandidate una compra pagada por encima del precio vigente.
type DropCandidate struct {
	CustomerID    string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	InvoiceID     string
	OldPrice      decimal.Decimal
	CurrentPrice  decimal.Decimal
	Difference    decimal.Decimal
}

// DropScan resultado del escaneo de un producto.
type DropScan struct {
	Product    *entity.Product
	Candidates []DropCandidate
}

// ScanDropsUseCase Price-Drop Scanner. Solo lectura.
type ScanDropsUseCase struct {
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
}

// NewScanDropsUseCase construye el caso de uso.
func NewScanDropsUseCase(productRepo repository.ProductRepository, invoiceRepo repository.InvoiceRepository) *ScanDropsUseCase {
	return &ScanDropsUseCase{productRepo: productRepo, invoiceRepo: invoiceRepo}
}

// ScanDrops devuelve una entrada por cada compra con price_at_purchase > precio vigente,
// en el orden de las facturas.
func (uc *ScanDropsUseCase) ScanDrops(ctx context.Context, productID string) (*DropScan, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(domain.EntityProduct, productID)
	}
	current := entity.NormalizePrice(p.Price)
	purchases, err := uc.invoiceRepo.ListPurchasesByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	scan := &DropScan{Product: p, Candidates: []DropCandidate{}}
	for _, rec := range purchases {
		paid := entity.NormalizePrice(rec.PriceAtPurchase)
		if !paid.GreaterThan(current) {
			continue
		}
		scan.Candidates = append(scan.Candidates, DropCandidate{
			CustomerID:    rec.CustomerID,
			CustomerName:  rec.CustomerName,
			CustomerPhone: rec.CustomerPhone,
			CustomerEmail: rec.CustomerEmail,
			InvoiceID:     rec.InvoiceID,
			OldPrice:      paid,
			CurrentPrice:  current,
			Difference:    paid.Sub(current),
		})
	}
	return scan, nil
}

// Scan igual que ScanDrops, como respuesta HTTP.
func (uc *ScanDropsUseCase) Scan(ctx context.Context, productID string) (*dto.PriceDropScanResponse, error) {
	scan, err := uc.ScanDrops(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.PriceDropScanResponse{
		ProductID:         scan.Product.ID,
		ProductName:       scan.Product.Name,
		CurrentPrice:      entity.NormalizePrice(scan.Product.Price),
		EligibleCustomers: make([]dto.PriceDropCandidate, 0, len(scan.Candidates)),
		Count:             len(scan.Candidates),
	}
	for _, c := range scan.Candidates {
		out.EligibleCustomers = append(out.EligibleCustomers, dto.PriceDropCandidate{
			CustomerID:    c.CustomerID,
			CustomerName:  c.CustomerName,
			CustomerPhone: c.CustomerPhone,
			CustomerEmail: c.CustomerEmail,
			InvoiceID:     c.InvoiceID,
			OldPrice:      c.OldPrice,
			CurrentPrice:  c.CurrentPrice,
			Difference:    c.Difference,
		})
	}
	return out, nil
}

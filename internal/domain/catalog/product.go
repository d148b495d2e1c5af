package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It is the aggregate root for stock-affecting operations: every quantity
// change must go through ApplyStockDelta so availability is enforced in one
// place.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null;index"`
	SKU           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	BuyPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	IsDeleted     bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, sku string, buyPrice, sellPrice decimal.Decimal, categoryID uuid.UUID, supplierID *uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product SKU is required")
	}
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               strings.ToUpper(sku),
		BuyPrice:          buyPrice,
		SellPrice:         sellPrice,
		CategoryID:        categoryID,
		SupplierID:        supplierID,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name string, buyPrice, sellPrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}

	p.Name = name
	p.BuyPrice = buyPrice
	p.SellPrice = sellPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// HasSufficientStock reports whether quantity units can be taken from stock
func (p *Product) HasSufficientStock(quantity int) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}

// ApplyStockDelta applies a signed quantity change to the product.
// A negative delta that would take the quantity below zero is rejected.
func (p *Product) ApplyStockDelta(delta int) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Stock delta cannot be zero")
	}
	newQuantity := p.StockQuantity + delta
	if newQuantity < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			"Insufficient stock for product "+p.Name)
	}

	p.StockQuantity = newQuantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// MarkDeleted soft-deletes the product
func (p *Product) MarkDeleted() error {
	if p.IsDeleted {
		return shared.ErrInvalidState
	}
	p.IsDeleted = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Restore reverses a soft delete
func (p *Product) Restore() error {
	if !p.IsDeleted {
		return shared.ErrInvalidState
	}
	p.IsDeleted = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// BelongsToSupplier reports whether the product is sourced from the supplier
func (p *Product) BelongsToSupplier(supplierID uuid.UUID) bool {
	return p.SupplierID != nil && *p.SupplierID == supplierID
}

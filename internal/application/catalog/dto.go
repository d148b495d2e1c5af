package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	SKU        string          `json:"sku" binding:"required,min=1,max=50"`
	BuyPrice   decimal.Decimal `json:"buy_price" binding:"required"`
	SellPrice  decimal.Decimal `json:"sell_price" binding:"required"`
	CategoryID uuid.UUID       `json:"category_id" binding:"required"`
	SupplierID *uuid.UUID      `json:"supplier_id"`
}

// UpdateProductRequest represents a request to update product info and prices
type UpdateProductRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	BuyPrice  decimal.Decimal `json:"buy_price" binding:"required"`
	SellPrice decimal.Decimal `json:"sell_price" binding:"required"`
}

// UpdateQuantityRequest represents a manual stock-quantity correction by an
// employee. The correction is recorded in the stock ledger, never written
// directly.
type UpdateQuantityRequest struct {
	NewQuantity int       `json:"new_quantity" binding:"min=0"`
	ManagerID   uuid.UUID `json:"manager_id" binding:"required"`
	Note        string    `json:"note"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	IsDeleted     bool            `json:"is_deleted"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		BuyPrice:      p.BuyPrice,
		SellPrice:     p.SellPrice,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		IsDeleted:     p.IsDeleted,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

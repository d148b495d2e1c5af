package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockInRequest represents a purchase receipt from a supplier
type StockInRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitBuyPrice decimal.Decimal `json:"unit_buy_price" binding:"required"`
	SupplierID   uuid.UUID       `json:"supplier_id" binding:"required"`
	Note         string          `json:"note"`
}

// AdjustStockRequest represents a cycle-count reconciliation.
// Apply=false is preview mode: the discrepancy and its financial impact are
// computed and returned without committing anything.
type AdjustStockRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	ActualQuantity int       `json:"actual_quantity" binding:"min=0"`
	ManagerID      uuid.UUID `json:"manager_id" binding:"required"`
	Apply          bool      `json:"apply"`
}

// AdjustmentResult reports the outcome of a cycle count
type AdjustmentResult struct {
	ProductID       uuid.UUID       `json:"product_id"`
	SystemQuantity  int             `json:"system_quantity"`
	ActualQuantity  int             `json:"actual_quantity"`
	Difference      int             `json:"difference"`
	FinancialImpact decimal.Decimal `json:"financial_impact"`
	Description     string          `json:"description"`
	Applied         bool            `json:"applied"`
}

// StockTransactionResponse represents a ledger entry in API responses
type StockTransactionResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	Type           string           `json:"type"`
	Quantity       int              `json:"quantity"`
	UnitBuyPrice   *decimal.Decimal `json:"unit_buy_price,omitempty"`
	UnitSellPrice  *decimal.Decimal `json:"unit_sell_price,omitempty"`
	OrderID        *uuid.UUID       `json:"order_id,omitempty"`
	SupplierID     *uuid.UUID       `json:"supplier_id,omitempty"`
	StoreManagerID *uuid.UUID       `json:"store_manager_id,omitempty"`
	Note           string           `json:"note,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ToStockTransactionResponse converts a ledger entry to a response DTO
func ToStockTransactionResponse(tx *inventory.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:             tx.ID,
		ProductID:      tx.ProductID,
		Type:           tx.Type.String(),
		Quantity:       tx.Quantity,
		UnitBuyPrice:   tx.UnitBuyPrice,
		UnitSellPrice:  tx.UnitSellPrice,
		OrderID:        tx.OrderID,
		SupplierID:     tx.SupplierID,
		StoreManagerID: tx.StoreManagerID,
		Note:           tx.Note,
		CreatedAt:      tx.CreatedAt,
	}
}

// ToStockTransactionResponses converts a slice of ledger entries to response DTOs
func ToStockTransactionResponses(txs []inventory.StockTransaction) []StockTransactionResponse {
	responses := make([]StockTransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToStockTransactionResponse(&txs[i])
	}
	return responses
}

package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
)

// TypeTotal is the folded signed quantity for one transaction type
type TypeTotal struct {
	Type     TransactionType `json:"type"`
	Quantity int             `json:"quantity"`
}

// StockTransactionRepository is the append-only persistence interface for the
// stock ledger. It deliberately exposes no update or delete operations.
type StockTransactionRepository interface {
	Append(ctx context.Context, tx *StockTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockTransaction, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]StockTransaction, error)
	// SumByProduct folds all signed quantities for a product
	SumByProduct(ctx context.Context, productID uuid.UUID) (int, error)
	// TotalsByType folds signed quantities per transaction type for a product
	TotalsByType(ctx context.Context, productID uuid.UUID) ([]TypeTotal, error)
}

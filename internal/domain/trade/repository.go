package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCode(ctx context.Context, code int64) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *Order) error
	// NextCode returns the next human-facing order code in sequence
	NextCode(ctx context.Context) (int64, error)
}

// ReturnRequestRepository defines the persistence interface for return requests
type ReturnRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnRequest, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ReturnRequest, error)
	FindByStatus(ctx context.Context, status ReturnStatus, filter shared.Filter) ([]ReturnRequest, error)
	Save(ctx context.Context, request *ReturnRequest) error
}

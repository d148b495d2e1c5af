package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products.
// FindByID and FindAll exclude soft-deleted products; FindByIDIncludingDeleted
// exists for the restore path.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	// SaveWithLock persists the product only if the stored version matches
	// product.Version-1, returning ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, product *Product) error
}

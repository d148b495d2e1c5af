package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
)

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	// FindByNameContaining returns all suppliers whose name contains the
	// given fragment, case-insensitive. Callers decide how to treat zero or
	// multiple matches.
	FindByNameContaining(ctx context.Context, name string) ([]Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
}

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
}

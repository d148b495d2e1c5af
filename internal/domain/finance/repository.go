package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
)

// InvoiceRepository defines the persistence interface for customer-facing invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Invoice, error)
	// FindByOrderAndType returns the single invoice of a type for an order
	FindByOrderAndType(ctx context.Context, orderID uuid.UUID, invoiceType InvoiceType) (*Invoice, error)
	FindByRecipient(ctx context.Context, recipientName string, filter shared.Filter) ([]Invoice, error)
	FindByType(ctx context.Context, invoiceType InvoiceType, filter shared.Filter) ([]Invoice, error)
	FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindLastPerRecipient returns each recipient's most recent invoice,
	// used for statement views.
	FindLastPerRecipient(ctx context.Context) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
}

// SupplierInvoiceRepository defines the persistence interface for supplier invoices
type SupplierInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierInvoice, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]SupplierInvoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplierInvoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *SupplierInvoice) error
}

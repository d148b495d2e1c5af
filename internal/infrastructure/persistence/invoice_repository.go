package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByOrder finds all invoices generated for an order
func (r *GormInvoiceRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByOrderAndType finds the invoice of one type for an order
func (r *GormInvoiceRepository) FindByOrderAndType(ctx context.Context, orderID uuid.UUID, invoiceType finance.InvoiceType) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).
		First(&invoice, "order_id = ? AND type = ?", orderID, invoiceType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByRecipient finds invoices addressed to a recipient
func (r *GormInvoiceRepository) FindByRecipient(ctx context.Context, recipientName string, filter shared.Filter) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	query := r.db.WithContext(ctx).Model(&finance.Invoice{}).
		Where("LOWER(recipient_name) LIKE ?", "%"+strings.ToLower(recipientName)+"%")
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByType finds invoices of a type
func (r *GormInvoiceRepository) FindByType(ctx context.Context, invoiceType finance.InvoiceType, filter shared.Filter) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	query := r.db.WithContext(ctx).Model(&finance.Invoice{}).
		Where("type = ?", invoiceType)
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByDateRange finds invoices generated within a date range
func (r *GormInvoiceRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	query := r.db.WithContext(ctx).Model(&finance.Invoice{}).
		Where("created_at >= ? AND created_at <= ?", start, end)
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	if err := applyFilter(r.filteredQuery(ctx, filter), filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvoiceRepository) filteredQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&finance.Invoice{})
	if invoiceType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", invoiceType)
	}
	if recipient, ok := filter.Filters["recipient_name"].(string); ok {
		query = query.Where("LOWER(recipient_name) LIKE ?", "%"+strings.ToLower(recipient)+"%")
	}
	if start, ok := filter.Filters["start_date"].(time.Time); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filter.Filters["end_date"].(time.Time); ok {
		query = query.Where("created_at <= ?", end)
	}
	return query
}

// FindLastPerRecipient returns each recipient's most recent invoice
func (r *GormInvoiceRepository) FindLastPerRecipient(ctx context.Context) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("created_at = (SELECT MAX(i2.created_at) FROM invoices i2 WHERE i2.recipient_name = invoices.recipient_name)").
		Order("recipient_name ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save persists an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)

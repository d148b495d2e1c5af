package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierInvoiceRepository implements finance.SupplierInvoiceRepository using GORM
type GormSupplierInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSupplierInvoiceRepository creates a new GormSupplierInvoiceRepository
func NewGormSupplierInvoiceRepository(db *gorm.DB) *GormSupplierInvoiceRepository {
	return &GormSupplierInvoiceRepository{db: db}
}

// FindByID finds a supplier invoice by ID
func (r *GormSupplierInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.SupplierInvoice, error) {
	var invoice finance.SupplierInvoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindBySupplier finds invoices for a supplier
func (r *GormSupplierInvoiceRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]finance.SupplierInvoice, error) {
	var invoices []finance.SupplierInvoice
	query := r.db.WithContext(ctx).Model(&finance.SupplierInvoice{}).
		Where("supplier_id = ?", supplierID)
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindAll finds supplier invoices matching the filter
func (r *GormSupplierInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.SupplierInvoice, error) {
	var invoices []finance.SupplierInvoice
	if err := applyFilter(r.filteredQuery(ctx, filter), filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts supplier invoices matching the filter
func (r *GormSupplierInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplierInvoiceRepository) filteredQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&finance.SupplierInvoice{})
	if invoiceType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", invoiceType)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if start, ok := filter.Filters["start_date"].(time.Time); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filter.Filters["end_date"].(time.Time); ok {
		query = query.Where("created_at <= ?", end)
	}
	return query
}

// Save persists a supplier invoice
func (r *GormSupplierInvoiceRepository) Save(ctx context.Context, invoice *finance.SupplierInvoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

var _ finance.SupplierInvoiceRepository = (*GormSupplierInvoiceRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/partner"
	"github.com/retaildist/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByNameContaining finds suppliers whose name contains the fragment, case-insensitive
func (r *GormSupplierRepository) FindByNameContaining(ctx context.Context, name string) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// FindAll finds suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := r.db.WithContext(ctx).Model(&partner.Supplier{})
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", search)
	}
	if err := applyFilter(query, filter).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save persists a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.db.WithContext(ctx).Model(&partner.Customer{})
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", search)
	}
	if err := applyFilter(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save persists a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)

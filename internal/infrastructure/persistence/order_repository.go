package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// firstOrderCode seeds the human-facing order code sequence
const firstOrderCode = 1001

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByCode finds an order with its items by its human-facing code
func (r *GormOrderRepository) FindByCode(ctx context.Context, code int64) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.filteredQuery(ctx, filter).Preload("Items")
	if err := applyFilter(query, filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) filteredQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&trade.Order{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Save persists an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// NextCode returns the next order code in sequence
func (r *GormOrderRepository) NextCode(ctx context.Context) (int64, error) {
	var max *int64
	if err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("MAX(code)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return firstOrderCode, nil
	}
	return *max + 1, nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)

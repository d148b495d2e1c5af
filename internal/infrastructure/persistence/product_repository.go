package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds an active product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDIncludingDeleted finds a product by ID regardless of soft-delete state
func (r *GormProductRepository) FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds an active product by SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		First(&product, "sku = ? AND is_deleted = ?", strings.ToUpper(sku), false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySupplier finds active products sourced from a supplier
func (r *GormProductRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND is_deleted = ?", supplierID, false).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds active products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.activeQuery(ctx, filter)
	if err := applyFilter(query, filter).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count counts active products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.activeQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) activeQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("is_deleted = ?", false)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	return query
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock persists a product using an optimistic version check. The
// aggregate increments its version before saving; zero affected rows means
// another transaction won the race.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"buy_price":      product.BuyPrice,
			"sell_price":     product.SellPrice,
			"stock_quantity": product.StockQuantity,
			"is_deleted":     product.IsDeleted,
			"version":        product.Version,
			"updated_at":     product.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

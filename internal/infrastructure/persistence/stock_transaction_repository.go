package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements the append-only stock ledger
// using GORM. Updates and deletes are not part of the interface.
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormStockTransactionRepository) Append(ctx context.Context, tx *inventory.StockTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByID finds a ledger entry by ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	var tx inventory.StockTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByProduct finds ledger entries for a product
func (r *GormStockTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("product_id = ?", productID)
	if err := applyFilter(query, filter).Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByOrder finds ledger entries linked to an order
func (r *GormStockTransactionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// SumByProduct folds all signed quantities for a product
func (r *GormStockTransactionRepository) SumByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var sum *int
	if err := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Select("SUM(quantity)").
		Where("product_id = ?", productID).
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// TotalsByType folds signed quantities per transaction type for a product
func (r *GormStockTransactionRepository) TotalsByType(ctx context.Context, productID uuid.UUID) ([]inventory.TypeTotal, error) {
	var totals []inventory.TypeTotal
	if err := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Select("type, SUM(quantity) AS quantity").
		Where("product_id = ?", productID).
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)

package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/partner"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))
	return db
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *partner.Supplier {
	supplier, err := partner.NewSupplier(name, "555-0200", "8 Depot Lane")
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku, buyPrice, sellPrice string, quantity int) *catalog.Product {
	product, err := catalog.NewProduct(name, sku,
		decimal.RequireFromString(buyPrice), decimal.RequireFromString(sellPrice),
		uuid.New(), nil)
	require.NoError(t, err)
	product.StockQuantity = quantity
	require.NoError(t, db.Create(product).Error)
	return product
}

func newStockService(db *gorm.DB) *StockService {
	return NewStockService(
		persistence.NewGormProductRepository(db),
		persistence.NewGormStockTransactionRepository(db),
		persistence.NewGormTransactionScope(db),
	)
}

func domainCode(t *testing.T, err error) string {
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	return derr.Code
}

func TestStockIn(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 5)

	resp, err := svc.StockIn(ctx, StockInRequest{
		ProductID:    widget.ID,
		Quantity:     20,
		UnitBuyPrice: decimal.RequireFromString("9.50"),
		SupplierID:   supplier.ID,
		Note:         "weekly restock",
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.TransactionTypeStockIn.String(), resp.Type)
	assert.Equal(t, 20, resp.Quantity)
	require.NotNil(t, resp.UnitBuyPrice)
	assert.True(t, resp.UnitBuyPrice.Equal(decimal.RequireFromString("9.50")))
	assert.Equal(t, "weekly restock", resp.Note)

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 25, product.StockQuantity)

	var invoice finance.SupplierInvoice
	require.NoError(t, db.First(&invoice, "type = ?", finance.SupplierInvoiceTypePurchase).Error)
	assert.Equal(t, supplier.ID, invoice.SupplierID)
	assert.Equal(t, supplier.Name, invoice.SupplierName)
	assert.True(t, invoice.Amount.Equal(decimal.RequireFromString("190.00")), "got %s", invoice.Amount)
	assert.True(t, invoice.RemainingAmount.Equal(invoice.Amount))
	assert.True(t, invoice.PaidAmount.IsZero())
}

func TestStockInUnknownSupplier(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 5)

	_, err := svc.StockIn(ctx, StockInRequest{
		ProductID:    widget.ID,
		Quantity:     10,
		UnitBuyPrice: decimal.RequireFromString("9.50"),
		SupplierID:   uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 5, product.StockQuantity)

	var count int64
	require.NoError(t, db.Model(&inventory.StockTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStockInValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 5)

	_, err := svc.StockIn(ctx, StockInRequest{
		ProductID:    widget.ID,
		Quantity:     0,
		UnitBuyPrice: decimal.RequireFromString("9.50"),
		SupplierID:   supplier.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", domainCode(t, err))

	_, err = svc.StockIn(ctx, StockInRequest{
		ProductID:    widget.ID,
		Quantity:     5,
		UnitBuyPrice: decimal.RequireFromString("-1.00"),
		SupplierID:   supplier.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", domainCode(t, err))
}

func TestAdjustStockPreview(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10)

	result, err := svc.AdjustStock(ctx, AdjustStockRequest{
		ProductID:      widget.ID,
		ActualQuantity: 7,
		ManagerID:      uuid.New(),
		Apply:          false,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.SystemQuantity)
	assert.Equal(t, 7, result.ActualQuantity)
	assert.Equal(t, -3, result.Difference)
	assert.True(t, result.FinancialImpact.Equal(decimal.RequireFromString("-30.00")), "got %s", result.FinancialImpact)
	assert.Contains(t, result.Description, "Deficit")
	assert.False(t, result.Applied)

	// Preview commits nothing.
	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 10, product.StockQuantity)

	var count int64
	require.NoError(t, db.Model(&inventory.StockTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdjustStockApply(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10)
	managerID := uuid.New()

	result, err := svc.AdjustStock(ctx, AdjustStockRequest{
		ProductID:      widget.ID,
		ActualQuantity: 13,
		ManagerID:      managerID,
		Apply:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Difference)
	assert.True(t, result.FinancialImpact.Equal(decimal.RequireFromString("30.00")))
	assert.Contains(t, result.Description, "Surplus")
	assert.True(t, result.Applied)

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 13, product.StockQuantity)

	var entry inventory.StockTransaction
	require.NoError(t, db.First(&entry, "type = ?", inventory.TransactionTypeAdjustment).Error)
	assert.Equal(t, 3, entry.Quantity)
	require.NotNil(t, entry.UnitBuyPrice)
	assert.True(t, entry.UnitBuyPrice.Equal(widget.BuyPrice))
	require.NotNil(t, entry.StoreManagerID)
	assert.Equal(t, managerID, *entry.StoreManagerID)
}

func TestAdjustStockNoDiscrepancy(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10)

	result, err := svc.AdjustStock(ctx, AdjustStockRequest{
		ProductID:      widget.ID,
		ActualQuantity: 10,
		ManagerID:      uuid.New(),
		Apply:          true,
	})
	require.NoError(t, err)
	assert.Zero(t, result.Difference)
	assert.False(t, result.Applied)
	assert.True(t, result.FinancialImpact.IsZero())

	var count int64
	require.NoError(t, db.Model(&inventory.StockTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLedgerMatchesProductQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := newStockService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 0)

	_, err := svc.StockIn(ctx, StockInRequest{
		ProductID:    widget.ID,
		Quantity:     30,
		UnitBuyPrice: decimal.RequireFromString("10.00"),
		SupplierID:   supplier.ID,
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, AdjustStockRequest{
		ProductID:      widget.ID,
		ActualQuantity: 27,
		ManagerID:      uuid.New(),
		Apply:          true,
	})
	require.NoError(t, err)

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 27, product.StockQuantity)

	ledger := persistence.NewGormStockTransactionRepository(db)
	sum, err := ledger.SumByProduct(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, product.StockQuantity, sum)

	totals, err := svc.TotalsByType(ctx, widget.ID)
	require.NoError(t, err)
	byType := map[inventory.TransactionType]int{}
	for _, total := range totals {
		byType[total.Type] = total.Quantity
	}
	assert.Equal(t, 30, byType[inventory.TransactionTypeStockIn])
	assert.Equal(t, -3, byType[inventory.TransactionTypeAdjustment])

	history, err := svc.History(ctx, widget.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

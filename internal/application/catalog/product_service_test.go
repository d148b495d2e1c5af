package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/inventory"
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

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(persistence.NewGormProductRepository(db), persistence.NewGormTransactionScope(db))
}

func createProduct(t *testing.T, svc *ProductService, name, sku string) *ProductResponse {
	resp, err := svc.Create(context.Background(), CreateProductRequest{
		Name:       name,
		SKU:        sku,
		BuyPrice:   decimal.RequireFromString("10.00"),
		SellPrice:  decimal.RequireFromString("25.00"),
		CategoryID: uuid.New(),
	})
	require.NoError(t, err)
	return resp
}

func domainCode(t *testing.T, err error) string {
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	return derr.Code
}

func TestProductServiceCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	resp := createProduct(t, svc, "Widget", "wid-1")
	assert.Equal(t, "Widget", resp.Name)
	assert.Equal(t, "WID-1", resp.SKU)
	assert.Zero(t, resp.StockQuantity)
	assert.False(t, resp.IsDeleted)

	// SKU uniqueness is case-insensitive through normalization.
	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:       "Widget Clone",
		SKU:        "WID-1",
		BuyPrice:   decimal.RequireFromString("1.00"),
		SellPrice:  decimal.RequireFromString("2.00"),
		CategoryID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, "ALREADY_EXISTS", domainCode(t, err))
}

func TestProductServiceUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	created := createProduct(t, svc, "Widget", "WID-1")

	updated, err := svc.Update(ctx, created.ID, UpdateProductRequest{
		Name:      "Widget Mk II",
		BuyPrice:  decimal.RequireFromString("11.00"),
		SellPrice: decimal.RequireFromString("28.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk II", updated.Name)
	assert.True(t, updated.SellPrice.Equal(decimal.RequireFromString("28.00")))

	_, err = svc.Update(ctx, created.ID, UpdateProductRequest{
		Name:      "Widget Mk II",
		BuyPrice:  decimal.RequireFromString("-1.00"),
		SellPrice: decimal.RequireFromString("28.00"),
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", domainCode(t, err))

	_, err = svc.Update(ctx, uuid.New(), UpdateProductRequest{
		Name:      "Ghost",
		BuyPrice:  decimal.RequireFromString("1.00"),
		SellPrice: decimal.RequireFromString("2.00"),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestProductServiceUpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	created := createProduct(t, svc, "Widget", "WID-1")
	managerID := uuid.New()

	up, err := svc.UpdateQuantity(ctx, created.ID, UpdateQuantityRequest{
		NewQuantity: 15,
		ManagerID:   managerID,
		Note:        "found pallet in back room",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, up.StockQuantity)

	var entry inventory.StockTransaction
	require.NoError(t, db.First(&entry, "type = ?", inventory.TransactionTypeUpdatedInByEmployee).Error)
	assert.Equal(t, 15, entry.Quantity)
	assert.Equal(t, "found pallet in back room", entry.Note)
	require.NotNil(t, entry.StoreManagerID)
	assert.Equal(t, managerID, *entry.StoreManagerID)

	down, err := svc.UpdateQuantity(ctx, created.ID, UpdateQuantityRequest{
		NewQuantity: 12,
		ManagerID:   managerID,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, down.StockQuantity)

	var downEntry inventory.StockTransaction
	require.NoError(t, db.First(&downEntry, "type = ?", inventory.TransactionTypeUpdatedOutByEmployee).Error)
	assert.Equal(t, -3, downEntry.Quantity)

	// The ledger stays in step with the recorded quantity.
	ledger := persistence.NewGormStockTransactionRepository(db)
	sum, err := ledger.SumByProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, sum)

	_, err = svc.UpdateQuantity(ctx, created.ID, UpdateQuantityRequest{
		NewQuantity: 12,
		ManagerID:   managerID,
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", domainCode(t, err))
}

func TestProductServiceDeleteAndRestore(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	created := createProduct(t, svc, "Widget", "WID-1")

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err := svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	// The row survives the soft delete.
	var row catalog.Product
	require.NoError(t, db.First(&row, "id = ?", created.ID).Error)
	assert.True(t, row.IsDeleted)

	restored, err := svc.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestProductServiceList(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	createProduct(t, svc, "Blue Widget", "WID-1")
	createProduct(t, svc, "Red Widget", "WID-2")
	gone := createProduct(t, svc, "Gadget", "GAD-1")
	require.NoError(t, svc.Delete(ctx, gone.ID))

	page, err := svc.List(ctx, ProductListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	widgets, err := svc.List(ctx, ProductListFilter{Search: "widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), widgets.Total)

	red, err := svc.List(ctx, ProductListFilter{Search: "red"})
	require.NoError(t, err)
	require.Equal(t, int64(1), red.Total)
	assert.Equal(t, "Red Widget", red.Items[0].Name)
}

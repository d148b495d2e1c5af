package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockTransaction(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name     string
		txType   TransactionType
		quantity int
		wantErr  bool
	}{
		{"stock in positive", TransactionTypeStockIn, 10, false},
		{"stock in negative rejected", TransactionTypeStockIn, -10, true},
		{"stock out negative", TransactionTypeStockOut, -3, false},
		{"stock out positive rejected", TransactionTypeStockOut, 3, true},
		{"return positive", TransactionTypeReturn, 2, false},
		{"return to supplier negative", TransactionTypeReturnToSupplier, -5, false},
		{"adjustment surplus", TransactionTypeAdjustment, 4, false},
		{"adjustment deficit", TransactionTypeAdjustment, -4, false},
		{"zero quantity rejected", TransactionTypeAdjustment, 0, true},
		{"invalid type", TransactionType("teleport"), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewStockTransaction(productID, tt.txType, tt.quantity)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, tx.Quantity)
			assert.Equal(t, tt.txType, tx.Type)
			assert.Equal(t, productID, tx.ProductID)
		})
	}
}

func TestStockTransaction_Links(t *testing.T) {
	orderID := uuid.New()
	managerID := uuid.New()
	price := decimal.NewFromFloat(10.00)

	tx, err := NewStockTransaction(uuid.New(), TransactionTypeStockOut, -3)
	require.NoError(t, err)

	tx.WithSellPrice(price).
		WithOrder(orderID).
		WithStoreManager(managerID).
		WithNote("order approval")

	require.NotNil(t, tx.UnitSellPrice)
	assert.True(t, tx.UnitSellPrice.Equal(price))
	assert.Equal(t, orderID, *tx.OrderID)
	assert.Equal(t, managerID, *tx.StoreManagerID)
	assert.Equal(t, "order approval", tx.Note)
	assert.True(t, tx.IsOutbound())
	assert.False(t, tx.IsInbound())
}

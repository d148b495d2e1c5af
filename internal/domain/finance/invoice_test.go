package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceHolds(t *testing.T, amount, paid, remaining decimal.Decimal) {
	t.Helper()
	assert.True(t, amount.Equal(paid.Add(remaining)),
		"amount %s != paid %s + remaining %s", amount, paid, remaining)
	assert.False(t, remaining.IsNegative())
}

func TestNewInvoice(t *testing.T) {
	inv, err := NewInvoice(InvoiceTypeCustomer, uuid.New(), "Acme Retail", decimal.NewFromFloat(80.00))
	require.NoError(t, err)

	assert.True(t, inv.Amount.Equal(decimal.NewFromFloat(80.00)))
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.RemainingAmount.Equal(inv.Amount))
	assert.False(t, inv.IsSettled())
	balanceHolds(t, inv.Amount, inv.PaidAmount, inv.RemainingAmount)

	_, err = NewInvoice(InvoiceType("gift"), uuid.New(), "Acme Retail", decimal.NewFromInt(10))
	assert.Error(t, err)

	_, err = NewInvoice(InvoiceTypeCustomer, uuid.New(), "  ", decimal.NewFromInt(10))
	assert.Error(t, err)

	_, err = NewInvoice(InvoiceTypeCustomer, uuid.New(), "Acme Retail", decimal.NewFromInt(-10))
	assert.Error(t, err)
}

func TestInvoice_ApplyPayment(t *testing.T) {
	newInvoice := func(t *testing.T) *Invoice {
		inv, err := NewInvoice(InvoiceTypeCustomer, uuid.New(), "Acme Retail", decimal.NewFromFloat(80.00))
		require.NoError(t, err)
		return inv
	}

	t.Run("partial then settle", func(t *testing.T) {
		inv := newInvoice(t)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromFloat(30.00)))
		balanceHolds(t, inv.Amount, inv.PaidAmount, inv.RemainingAmount)
		assert.True(t, inv.RemainingAmount.Equal(decimal.NewFromFloat(50.00)))

		require.NoError(t, inv.ApplyPayment(decimal.NewFromFloat(50.00)))
		assert.True(t, inv.IsSettled())
		balanceHolds(t, inv.Amount, inv.PaidAmount, inv.RemainingAmount)
	})

	t.Run("overpayment rejected whole", func(t *testing.T) {
		inv := newInvoice(t)
		err := inv.ApplyPayment(decimal.NewFromFloat(100.00))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
		assert.True(t, inv.PaidAmount.IsZero(), "state must be unchanged")
		assert.True(t, inv.RemainingAmount.Equal(inv.Amount))
	})

	t.Run("non-positive rejected", func(t *testing.T) {
		inv := newInvoice(t)
		assert.Error(t, inv.ApplyPayment(decimal.Zero))
		assert.Error(t, inv.ApplyPayment(decimal.NewFromInt(-5)))
	})
}

func TestSupplierInvoice_ApplyPayment(t *testing.T) {
	inv, err := NewSupplierInvoice(SupplierInvoiceTypePurchase, uuid.New(), "Northside Goods", decimal.NewFromFloat(120.00))
	require.NoError(t, err)

	require.NoError(t, inv.ApplyPayment(decimal.NewFromFloat(120.00)))
	assert.True(t, inv.IsSettled())

	err = inv.ApplyPayment(decimal.NewFromFloat(0.01))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OVERPAYMENT", domainErr.Code)
}

func TestNewSupplierInvoice_Validation(t *testing.T) {
	_, err := NewSupplierInvoice(SupplierInvoiceTypeReturn, uuid.Nil, "Northside Goods", decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewSupplierInvoice(SupplierInvoiceType("barter"), uuid.New(), "Northside Goods", decimal.NewFromInt(1))
	assert.Error(t, err)
}

package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/domain/trade"
	"github.com/retaildist/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReturnService(db *gorm.DB) *ReturnService {
	return NewReturnService(persistence.NewGormReturnRequestRepository(db), persistence.NewGormTransactionScope(db))
}

// approvedOrder walks an order through the full lifecycle so returns can be
// filed against it.
func approvedOrder(t *testing.T, db *gorm.DB, customerID, productID uuid.UUID, quantity int) *OrderResponse {
	svc := newOrderService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderRequest{
		CustomerID: customerID,
		Items:      []CreateOrderItemInput{{ProductID: productID, Quantity: quantity}},
	})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, created.ID, ConfirmOrderRequest{SalesRepID: uuid.New(), SalesRepName: "Dana Reyes"})
	require.NoError(t, err)
	approved, err := svc.Approve(ctx, created.ID, ApproveOrderRequest{ManagerID: uuid.New()})
	require.NoError(t, err)
	return approved
}

func TestReturnServiceCustomerReturn(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)
	order := approvedOrder(t, db, customer.ID, widget.ID, 3)

	resp, err := svc.CreateReturnRequest(ctx, CreateReturnRequestInput{
		OrderCode: order.Code,
		Items:     []ReturnLineInput{{ProductID: widget.ID, Quantity: 2, Reason: "damaged in transit"}},
	})
	require.NoError(t, err)
	assert.Equal(t, trade.ReturnStatusApproved.String(), resp.Status)
	require.NotNil(t, resp.ResolvedAt)

	// Restocked: 10 - 3 sold + 2 returned.
	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 9, product.StockQuantity)

	ledger := persistence.NewGormStockTransactionRepository(db)
	sum, err := ledger.SumByProduct(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, sum)

	var returnEntry inventory.StockTransaction
	require.NoError(t, db.First(&returnEntry, "type = ?", inventory.TransactionTypeReturn).Error)
	assert.Equal(t, 2, returnEntry.Quantity)
	assert.Equal(t, "damaged in transit", returnEntry.Note)
	require.NotNil(t, returnEntry.UnitSellPrice)
	assert.True(t, returnEntry.UnitSellPrice.Equal(widget.SellPrice))

	var returnInvoice finance.Invoice
	require.NoError(t, db.First(&returnInvoice, "type = ?", finance.InvoiceTypeReturn).Error)
	assert.Equal(t, customer.Name, returnInvoice.RecipientName)
	assert.True(t, returnInvoice.Amount.Equal(decimal.RequireFromString("50.00")), "got %s", returnInvoice.Amount)
}

func TestReturnServiceCreditedAtCurrentSellPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)
	order := approvedOrder(t, db, customer.ID, widget.ID, 2)

	// Price raised after the sale; the credit follows the current price.
	require.NoError(t, db.Model(&catalog.Product{}).
		Where("id = ?", widget.ID).
		Update("sell_price", decimal.RequireFromString("30.00")).Error)

	_, err := svc.CreateReturnRequest(ctx, CreateReturnRequestInput{
		OrderCode: order.Code,
		Items:     []ReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	var returnInvoice finance.Invoice
	require.NoError(t, db.First(&returnInvoice, "type = ?", finance.InvoiceTypeReturn).Error)
	assert.True(t, returnInvoice.Amount.Equal(decimal.RequireFromString("30.00")), "got %s", returnInvoice.Amount)
}

func TestReturnServiceValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)
	gadget := seedProduct(t, db, "Gadget", "GAD-1", "4.00", "15.00", 10, nil)
	order := approvedOrder(t, db, customer.ID, widget.ID, 2)

	tests := []struct {
		name     string
		input    CreateReturnRequestInput
		wantCode string
	}{
		{
			name: "unknown order code",
			input: CreateReturnRequestInput{
				OrderCode: 999999,
				Items:     []ReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
			},
			wantCode: "NOT_FOUND",
		},
		{
			name: "product not in order",
			input: CreateReturnRequestInput{
				OrderCode: order.Code,
				Items:     []ReturnLineInput{{ProductID: gadget.ID, Quantity: 1}},
			},
			wantCode: "INVALID_INPUT",
		},
		{
			name: "quantity exceeds purchase",
			input: CreateReturnRequestInput{
				OrderCode: order.Code,
				Items:     []ReturnLineInput{{ProductID: widget.ID, Quantity: 3}},
			},
			wantCode: "INVALID_INPUT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReturnRequest(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domainCode(t, err))
		})
	}

	// Nothing persisted by the failed attempts.
	var count int64
	require.NoError(t, db.Model(&trade.ReturnRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReturnServiceUnapprovedOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	returnSvc := newReturnService(db)
	orderSvc := newOrderService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)

	pending, err := orderSvc.Create(ctx, CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateOrderItemInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = returnSvc.CreateReturnRequest(ctx, CreateReturnRequestInput{
		OrderCode: pending.Code,
		Items:     []ReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", domainCode(t, err))
}

func TestReturnServiceMissingCustomerInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)
	order := approvedOrder(t, db, customer.ID, widget.ID, 2)

	require.NoError(t, db.Where("order_id = ?", order.ID).Delete(&finance.Invoice{}).Error)

	_, err := svc.CreateReturnRequest(ctx, CreateReturnRequestInput{
		OrderCode: order.Code,
		Items:     []ReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	// The failed approval rolled back the restock.
	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)
}

func TestReturnServiceRejectPendingRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)
	orderResp := approvedOrder(t, db, customer.ID, widget.ID, 2)

	// A request parked in PENDING, as created through other channels.
	var order trade.Order
	require.NoError(t, db.Preload("Items").First(&order, "id = ?", orderResp.ID).Error)
	request, err := trade.NewReturnRequest(&order, []trade.ReturnLine{{ProductID: widget.ID, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, db.Create(request).Error)

	pending, err := svc.ListPending(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, request.ID, pending[0].ID)

	rejected, err := svc.RejectReturnRequest(ctx, request.ID, RejectReturnRequestInput{Reason: "outside return window"})
	require.NoError(t, err)
	assert.Equal(t, trade.ReturnStatusRejected.String(), rejected.Status)
	assert.Equal(t, "outside return window", rejected.RejectionReason)

	// No stock or invoice side effects on rejection.
	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)

	_, err = svc.RejectReturnRequest(ctx, request.ID, RejectReturnRequestInput{Reason: "again"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", domainCode(t, err))
}

func TestReturnServiceApprovePendingRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Harbor Grocers")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)
	orderResp := approvedOrder(t, db, customer.ID, widget.ID, 2)

	var order trade.Order
	require.NoError(t, db.Preload("Items").First(&order, "id = ?", orderResp.ID).Error)
	request, err := trade.NewReturnRequest(&order, []trade.ReturnLine{{ProductID: widget.ID, Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, db.Create(request).Error)

	approved, err := svc.ApproveReturnRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.ReturnStatusApproved.String(), approved.Status)

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 10, product.StockQuantity)
}

func TestReturnToSupplier(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, &supplier.ID)

	result, err := svc.ReturnToSupplier(ctx, ReturnToSupplierRequest{
		SupplierName: "acme",
		Items:        []SupplierReturnLineInput{{ProductID: widget.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, result.SupplierID)
	assert.True(t, result.TotalValue.Equal(decimal.RequireFromString("40.00")), "got %s", result.TotalValue)

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 6, product.StockQuantity)

	var entry inventory.StockTransaction
	require.NoError(t, db.First(&entry, "type = ?", inventory.TransactionTypeReturnToSupplier).Error)
	assert.Equal(t, -4, entry.Quantity)
	require.NotNil(t, entry.UnitBuyPrice)
	assert.True(t, entry.UnitBuyPrice.Equal(widget.BuyPrice))

	var invoice finance.SupplierInvoice
	require.NoError(t, db.First(&invoice, "type = ?", finance.SupplierInvoiceTypeReturn).Error)
	assert.Equal(t, supplier.ID, invoice.SupplierID)
	assert.True(t, invoice.Amount.Equal(decimal.RequireFromString("40.00")))
}

func TestReturnToSupplierNameResolution(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	seedSupplier(t, db, "Acme Wholesale")
	seedSupplier(t, db, "Acme Traders")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, nil)

	_, err := svc.ReturnToSupplier(ctx, ReturnToSupplierRequest{
		SupplierName: "northwind",
		Items:        []SupplierReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	_, err = svc.ReturnToSupplier(ctx, ReturnToSupplierRequest{
		SupplierName: "acme",
		Items:        []SupplierReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "AMBIGUOUS_REFERENCE", domainCode(t, err))
}

func TestReturnToSupplierWrongSupplier(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	acme := seedSupplier(t, db, "Acme Wholesale")
	other := seedSupplier(t, db, "Northwind Goods")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, &other.ID)
	_ = acme

	_, err := svc.ReturnToSupplier(ctx, ReturnToSupplierRequest{
		SupplierName: "Acme Wholesale",
		Items:        []SupplierReturnLineInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", domainCode(t, err))
}

func TestReturnToSupplierAtomicity(t *testing.T) {
	db := setupTestDB(t)
	svc := newReturnService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	widget := seedProduct(t, db, "Widget", "WID-1", "10.00", "25.00", 10, &supplier.ID)
	gadget := seedProduct(t, db, "Gadget", "GAD-1", "4.00", "15.00", 2, &supplier.ID)

	_, err := svc.ReturnToSupplier(ctx, ReturnToSupplierRequest{
		SupplierName: "Acme Wholesale",
		Items: []SupplierReturnLineInput{
			{ProductID: widget.ID, Quantity: 5},
			{ProductID: gadget.ID, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainCode(t, err))

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", widget.ID).Error)
	assert.Equal(t, 10, product.StockQuantity)

	var invoiceCount int64
	require.NoError(t, db.Model(&finance.SupplierInvoice{}).Count(&invoiceCount).Error)
	assert.Zero(t, invoiceCount)
}

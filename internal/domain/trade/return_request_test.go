package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedOrder(t *testing.T) *Order {
	t.Helper()
	order := twoItemOrder(t)
	require.NoError(t, order.Confirm(uuid.New(), "Jordan", defaultCommissionRate))
	require.NoError(t, order.Approve(uuid.New()))
	return order
}

func TestNewReturnRequest(t *testing.T) {
	t.Run("valid lines", func(t *testing.T) {
		order := approvedOrder(t)
		req, err := NewReturnRequest(order, []ReturnLine{
			{ProductID: order.Items[0].ProductID, Quantity: 2, Reason: "damaged"},
		})
		require.NoError(t, err)
		assert.Equal(t, ReturnStatusPending, req.Status)
		assert.Equal(t, order.ID, req.OrderID)
		assert.Equal(t, order.Code, req.OrderCode)
		require.Len(t, req.Items, 1)
		assert.Equal(t, req.ID, req.Items[0].ReturnRequestID)
	})

	t.Run("order not approved", func(t *testing.T) {
		order := twoItemOrder(t)
		_, err := NewReturnRequest(order, []ReturnLine{
			{ProductID: order.Items[0].ProductID, Quantity: 1},
		})
		assert.Error(t, err)
	})

	t.Run("product not on order", func(t *testing.T) {
		order := approvedOrder(t)
		_, err := NewReturnRequest(order, []ReturnLine{
			{ProductID: uuid.New(), Quantity: 1},
		})
		assert.Error(t, err)
	})

	t.Run("quantity exceeds purchased", func(t *testing.T) {
		order := approvedOrder(t)
		_, err := NewReturnRequest(order, []ReturnLine{
			{ProductID: order.Items[0].ProductID, Quantity: order.Items[0].Quantity + 1},
		})
		assert.Error(t, err)
	})

	t.Run("no lines", func(t *testing.T) {
		order := approvedOrder(t)
		_, err := NewReturnRequest(order, nil)
		assert.Error(t, err)
	})
}

func TestReturnRequest_ApproveReject(t *testing.T) {
	newPending := func(t *testing.T) *ReturnRequest {
		order := approvedOrder(t)
		req, err := NewReturnRequest(order, []ReturnLine{
			{ProductID: order.Items[0].ProductID, Quantity: 1},
		})
		require.NoError(t, err)
		return req
	}

	t.Run("approve from pending", func(t *testing.T) {
		req := newPending(t)
		require.NoError(t, req.Approve())
		assert.Equal(t, ReturnStatusApproved, req.Status)
		assert.NotNil(t, req.ResolvedAt)
		assert.Error(t, req.Approve())
	})

	t.Run("reject needs reason", func(t *testing.T) {
		req := newPending(t)
		assert.Error(t, req.Reject(""))
		require.NoError(t, req.Reject("restocking window closed"))
		assert.Equal(t, ReturnStatusRejected, req.Status)
		assert.Error(t, req.Approve())
	})
}

func TestOrderItem_Amount(t *testing.T) {
	item, err := NewOrderItem(uuid.Nil, uuid.New(), "Product A", 3, decimal.NewFromFloat(10.00))
	require.NoError(t, err)
	assert.True(t, item.Amount().Equal(decimal.NewFromFloat(30.00)))
}

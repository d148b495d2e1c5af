package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusApproved  OrderStatus = "APPROVED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusApproved:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are forward-only; APPROVED is terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusApproved
	}
	return false
}

// OrderItem represents a line item in an order. UnitPrice is the sell price
// captured when the order was created; later catalog price changes never
// touch it.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns quantity times unit price
func (i *OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderItem creates a new order item with a price snapshot
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   time.Now(),
	}, nil
}

// Order is the aggregate root for the order lifecycle:
// PENDING -> CONFIRMED (sales rep claims, commission locked)
// CONFIRMED -> APPROVED (manager deducts stock, invoices generated).
// TotalAmount and CommissionAmount are computed once and frozen.
type Order struct {
	shared.BaseAggregateRoot
	Code             int64           `gorm:"not null;uniqueIndex"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName     string          `gorm:"type:varchar(200);not null"`
	SalesRepID       *uuid.UUID      `gorm:"type:uuid;index"`
	SalesRepName     string          `gorm:"type:varchar(200)"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;index"`
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in PENDING status. Items carry price snapshots
// taken by the caller at creation time; the total is computed here and never
// recalculated.
func NewOrder(code int64, customerID uuid.UUID, customerName string, items []OrderItem) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            OrderStatusPending,
		CommissionAmount:  decimal.Zero,
	}

	total := decimal.Zero
	for i := range items {
		items[i].OrderID = order.ID
		total = total.Add(items[i].Amount())
	}
	order.Items = items
	order.TotalAmount = total

	return order, nil
}

// NewConfirmedOrder creates an order directly in CONFIRMED status with the
// commission pre-computed. This is the manager-initiated "on behalf of
// customer" path that skips PENDING.
func NewConfirmedOrder(code int64, customerID uuid.UUID, customerName string, salesRepID uuid.UUID, salesRepName string, items []OrderItem, commissionRate decimal.Decimal) (*Order, error) {
	order, err := NewOrder(code, customerID, customerName, items)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(salesRepID, salesRepName, commissionRate); err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm moves the order to CONFIRMED, binds the sales rep and locks the
// commission amount at the given rate. Later rate changes never affect it.
func (o *Order) Confirm(salesRepID uuid.UUID, salesRepName string, commissionRate decimal.Decimal) error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if salesRepID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Sales rep ID cannot be empty")
	}
	if commissionRate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Commission rate cannot be negative")
	}

	o.SalesRepID = &salesRepID
	o.SalesRepName = salesRepName
	o.CommissionAmount = o.TotalAmount.Mul(commissionRate)
	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Approve moves the order to APPROVED and stamps the approval. Stock
// deduction and invoice creation are orchestrated by the application service
// in the same unit of work.
func (o *Order) Approve(managerID uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}
	if managerID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Manager ID cannot be empty")
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedAt = &now
	o.ApprovedBy = &managerID
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// HasSalesRep reports whether a sales rep is bound to the order
func (o *Order) HasSalesRep() bool {
	return o.SalesRepID != nil
}

// IsApproved reports whether the order is in APPROVED status
func (o *Order) IsApproved() bool {
	return o.Status == OrderStatusApproved
}

// ItemByProduct returns the order item for a product, or nil
func (o *Order) ItemByProduct(productID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
)

// ReturnStatus represents the status of a return request
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "PENDING"
	ReturnStatusApproved ReturnStatus = "APPROVED"
	ReturnStatusRejected ReturnStatus = "REJECTED"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// ReturnItem is one returned product line, owned by its ReturnRequest
type ReturnItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	Quantity        int       `gorm:"not null"`
	Reason          string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItem) TableName() string {
	return "return_items"
}

// ReturnRequest is the customer-return aggregate. Items must reference
// products from the original order in quantities not exceeding what was
// purchased; that validation happens at construction against the order.
type ReturnRequest struct {
	shared.BaseAggregateRoot
	OrderID         uuid.UUID    `gorm:"type:uuid;not null;index"`
	OrderCode       int64        `gorm:"not null;index"`
	CustomerID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status          ReturnStatus `gorm:"type:varchar(20);not null;index"`
	Items           []ReturnItem `gorm:"foreignKey:ReturnRequestID"`
	RejectionReason string       `gorm:"type:varchar(255)"`
	ResolvedAt      *time.Time
}

// TableName returns the table name for GORM
func (ReturnRequest) TableName() string {
	return "return_requests"
}

// ReturnLine is a requested product/quantity pair before validation
type ReturnLine struct {
	ProductID uuid.UUID
	Quantity  int
	Reason    string
}

// NewReturnRequest creates a PENDING return request for an approved order.
// Every requested line must match an order item and stay within the
// originally purchased quantity.
func NewReturnRequest(order *Order, lines []ReturnLine) (*ReturnRequest, error) {
	if order == nil {
		return nil, shared.ErrNotFound
	}
	if !order.IsApproved() {
		return nil, shared.NewDomainError("INVALID_STATE", "Returns are only accepted for approved orders")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Return request must contain at least one item")
	}

	req := &ReturnRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           order.ID,
		OrderCode:         order.Code,
		CustomerID:        order.CustomerID,
		Status:            ReturnStatusPending,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Return quantity must be positive")
		}
		item := order.ItemByProduct(line.ProductID)
		if item == nil {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Product %s was not part of order %d", line.ProductID, order.Code))
		}
		if line.Quantity > item.Quantity {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Return quantity %d exceeds purchased quantity %d for %s", line.Quantity, item.Quantity, item.ProductName))
		}
		req.Items = append(req.Items, ReturnItem{
			ID:              uuid.New(),
			ReturnRequestID: req.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			Reason:          line.Reason,
			CreatedAt:       time.Now(),
		})
	}

	return req, nil
}

// Approve marks the request approved. Restocking and the return invoice are
// handled by the application service in the same unit of work.
func (r *ReturnRequest) Approve() error {
	if r.Status != ReturnStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve return request in %s status", r.Status))
	}
	now := time.Now()
	r.Status = ReturnStatusApproved
	r.ResolvedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Reject marks the request rejected with a reason
func (r *ReturnRequest) Reject(reason string) error {
	if r.Status != ReturnStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject return request in %s status", r.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_INPUT", "Rejection reason is required")
	}
	now := time.Now()
	r.Status = ReturnStatusRejected
	r.RejectionReason = reason
	r.ResolvedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceType discriminates customer-facing invoice kinds. A single record
// with a type tag carries the shared balance logic for all of them.
type InvoiceType string

const (
	// InvoiceTypeCustomer bills the customer for an approved order
	InvoiceTypeCustomer InvoiceType = "customer"
	// InvoiceTypeCommission tracks the amount owed to the sales rep
	InvoiceTypeCommission InvoiceType = "commission"
	// InvoiceTypeReturn credits the customer after an approved return
	InvoiceTypeReturn InvoiceType = "return"
)

// IsValid checks if the invoice type is valid
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeCustomer, InvoiceTypeCommission, InvoiceTypeReturn:
		return true
	}
	return false
}

// String returns the string representation
func (t InvoiceType) String() string {
	return string(t)
}

// Invoice is a customer-facing settlement record. The balance invariant
// Amount == PaidAmount + RemainingAmount with RemainingAmount >= 0 holds at
// all times; ApplyPayment is the only mutation after creation.
type Invoice struct {
	shared.BaseAggregateRoot
	Type            InvoiceType     `gorm:"type:varchar(20);not null;index"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecipientName   string          `gorm:"type:varchar(200);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates an invoice with the full amount outstanding
func NewInvoice(invoiceType InvoiceType, orderID uuid.UUID, recipientName string, amount decimal.Decimal) (*Invoice, error) {
	if !invoiceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid invoice type")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice order ID cannot be empty")
	}
	if strings.TrimSpace(recipientName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice recipient name is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice amount cannot be negative")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              invoiceType,
		OrderID:           orderID,
		RecipientName:     recipientName,
		Amount:            amount,
		PaidAmount:        decimal.Zero,
		RemainingAmount:   amount,
	}, nil
}

// ApplyPayment applies a payment against the remaining balance. A payment
// exceeding the balance is rejected whole, never clamped.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	newRemaining := inv.RemainingAmount.Sub(amount)
	if newRemaining.IsNegative() {
		return shared.NewDomainError("OVERPAYMENT",
			"Payment of "+amount.String()+" exceeds remaining balance of "+inv.RemainingAmount.String())
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.RemainingAmount = newRemaining
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// IsSettled reports whether the invoice is fully paid
func (inv *Invoice) IsSettled() bool {
	return inv.RemainingAmount.IsZero()
}

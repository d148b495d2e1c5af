package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplierInvoiceType discriminates supplier-side invoice kinds
type SupplierInvoiceType string

const (
	// SupplierInvoiceTypePurchase records money owed for a stock-in purchase
	SupplierInvoiceTypePurchase SupplierInvoiceType = "supplier"
	// SupplierInvoiceTypeReturn records credit for goods sent back to the supplier
	SupplierInvoiceTypeReturn SupplierInvoiceType = "supplier_return"
)

// IsValid checks if the supplier invoice type is valid
func (t SupplierInvoiceType) IsValid() bool {
	return t == SupplierInvoiceTypePurchase || t == SupplierInvoiceTypeReturn
}

// String returns the string representation
func (t SupplierInvoiceType) String() string {
	return string(t)
}

// SupplierInvoice is the supplier-side settlement record with the same
// balance invariant and payment rule as Invoice.
type SupplierInvoice struct {
	shared.BaseAggregateRoot
	Type            SupplierInvoiceType `gorm:"type:varchar(20);not null;index"`
	SupplierID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName    string              `gorm:"type:varchar(200);not null"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SupplierInvoice) TableName() string {
	return "supplier_invoices"
}

// NewSupplierInvoice creates a supplier invoice with the full amount outstanding
func NewSupplierInvoice(invoiceType SupplierInvoiceType, supplierID uuid.UUID, supplierName string, amount decimal.Decimal) (*SupplierInvoice, error) {
	if !invoiceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid supplier invoice type")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID cannot be empty")
	}
	if strings.TrimSpace(supplierName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice amount cannot be negative")
	}

	return &SupplierInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              invoiceType,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Amount:            amount,
		PaidAmount:        decimal.Zero,
		RemainingAmount:   amount,
	}, nil
}

// ApplyPayment applies a payment against the remaining balance, rejecting
// overpayment whole. The rule is identical to Invoice.ApplyPayment.
func (inv *SupplierInvoice) ApplyPayment(amount decimal.Decimal) error {
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
func (inv *SupplierInvoice) IsSettled() bool {
	return inv.RemainingAmount.IsZero()
}

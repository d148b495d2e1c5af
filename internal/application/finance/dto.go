package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest applies a payment against an invoice balance
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// InvoiceListFilter represents filter options for invoice queries
type InvoiceListFilter struct {
	Type      *finance.InvoiceType `form:"type"`
	Recipient string               `form:"recipient"`
	StartDate *time.Time           `form:"start_date"`
	EndDate   *time.Time           `form:"end_date"`
	Page      int                  `form:"page" binding:"min=1"`
	PageSize  int                  `form:"page_size" binding:"min=1,max=100"`
	OrderBy   string               `form:"order_by"`
	OrderDir  string               `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceResponse represents a customer-facing invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Type            string          `json:"type"`
	OrderID         uuid.UUID       `json:"order_id"`
	RecipientName   string          `json:"recipient_name"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		Type:            inv.Type.String(),
		OrderID:         inv.OrderID,
		RecipientName:   inv.RecipientName,
		Amount:          inv.Amount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices to response DTOs
func ToInvoiceResponses(invoices []finance.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// SupplierInvoiceResponse represents a supplier invoice in API responses
type SupplierInvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Type            string          `json:"type"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToSupplierInvoiceResponse converts a domain supplier invoice to a response DTO
func ToSupplierInvoiceResponse(inv *finance.SupplierInvoice) SupplierInvoiceResponse {
	return SupplierInvoiceResponse{
		ID:              inv.ID,
		Type:            inv.Type.String(),
		SupplierID:      inv.SupplierID,
		SupplierName:    inv.SupplierName,
		Amount:          inv.Amount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// ToSupplierInvoiceResponses converts a slice of supplier invoices to response DTOs
func ToSupplierInvoiceResponses(invoices []finance.SupplierInvoice) []SupplierInvoiceResponse {
	responses := make([]SupplierInvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToSupplierInvoiceResponse(&invoices[i])
	}
	return responses
}

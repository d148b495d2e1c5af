package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/application/uow"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/shared"
)

// InvoiceService handles payment application and settlement queries for
// customer and supplier invoices. The payment rule is identical on both
// sides: positive amounts only, overpayment rejected whole.
type InvoiceService struct {
	invoiceRepo         finance.InvoiceRepository
	supplierInvoiceRepo finance.SupplierInvoiceRepository
	txScope             uow.TransactionScope
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo finance.InvoiceRepository, supplierInvoiceRepo finance.SupplierInvoiceRepository, txScope uow.TransactionScope) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:         invoiceRepo,
		supplierInvoiceRepo: supplierInvoiceRepo,
		txScope:             txScope,
	}
}

// ApplyPayment applies a payment to a customer-facing invoice
func (s *InvoiceService) ApplyPayment(ctx context.Context, invoiceID uuid.UUID, req ApplyPaymentRequest) (*InvoiceResponse, error) {
	var resp InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		invoice, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.ApplyPayment(req.Amount); err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}
		resp = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApplySupplierPayment applies a payment to a supplier invoice
func (s *InvoiceService) ApplySupplierPayment(ctx context.Context, invoiceID uuid.UUID, req ApplyPaymentRequest) (*SupplierInvoiceResponse, error) {
	var resp SupplierInvoiceResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		invoice, err := repos.SupplierInvoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.ApplyPayment(req.Amount); err != nil {
			return err
		}
		if err := repos.SupplierInvoices().Save(ctx, invoice); err != nil {
			return err
		}
		resp = ToSupplierInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// GetByOrder returns all invoices generated for an order
func (s *InvoiceService) GetByOrder(ctx context.Context, orderID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// List returns a page of invoices filtered by type, recipient and date range
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	if filter.Type != nil {
		f.Filters["type"] = filter.Type.String()
	}
	if filter.Recipient != "" {
		f.Filters["recipient_name"] = filter.Recipient
	}
	if filter.StartDate != nil {
		f.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		f.Filters["end_date"] = *filter.EndDate
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToInvoiceResponses(invoices), total, f.Page, f.PageSize)
	return &page, nil
}

// Statements returns each recipient's latest invoice, the statement view
func (s *InvoiceService) Statements(ctx context.Context) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindLastPerRecipient(ctx)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// ListSupplierInvoices returns a page of supplier invoices
func (s *InvoiceService) ListSupplierInvoices(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierInvoiceResponse], error) {
	invoices, err := s.supplierInvoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierInvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToSupplierInvoiceResponses(invoices), total, filter.Page, filter.PageSize)
	return &page, nil
}

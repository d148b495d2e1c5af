package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/application/uow"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ReturnService handles customer returns and supplier returns. Customer
// returns are approved synchronously on creation; the manual approve and
// reject operations remain for requests created through other channels.
type ReturnService struct {
	returnRepo trade.ReturnRequestRepository
	txScope    uow.TransactionScope
}

// NewReturnService creates a new ReturnService
func NewReturnService(returnRepo trade.ReturnRequestRepository, txScope uow.TransactionScope) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		txScope:    txScope,
	}
}

// CreateReturnRequest validates the requested lines against the original
// order, creates the request and approves it in the same unit of work:
// restock, return invoice and status change land together or not at all.
func (s *ReturnService) CreateReturnRequest(ctx context.Context, input CreateReturnRequestInput) (*ReturnRequestResponse, error) {
	var resp ReturnRequestResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		order, err := repos.Orders().FindByCode(ctx, input.OrderCode)
		if err != nil {
			return err
		}

		lines := make([]trade.ReturnLine, len(input.Items))
		for i, item := range input.Items {
			lines[i] = trade.ReturnLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    item.Reason,
			}
		}

		request, err := trade.NewReturnRequest(order, lines)
		if err != nil {
			return err
		}
		if err := s.approveInScope(ctx, repos, request, order); err != nil {
			return err
		}
		if err := repos.Returns().Save(ctx, request); err != nil {
			return err
		}

		resp = ToReturnRequestResponse(request)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApproveReturnRequest approves a pending request: restocks each returned
// product, appends Return ledger entries and creates the return invoice with
// the recipient copied from the original customer invoice.
func (s *ReturnService) ApproveReturnRequest(ctx context.Context, id uuid.UUID) (*ReturnRequestResponse, error) {
	var resp ReturnRequestResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		request, err := repos.Returns().FindByID(ctx, id)
		if err != nil {
			return err
		}
		order, err := repos.Orders().FindByID(ctx, request.OrderID)
		if err != nil {
			return err
		}
		if err := s.approveInScope(ctx, repos, request, order); err != nil {
			return err
		}
		if err := repos.Returns().Save(ctx, request); err != nil {
			return err
		}
		resp = ToReturnRequestResponse(request)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// approveInScope performs the approval side effects inside an open
// transaction. The returned amount is valued at the current sell price of
// each product, matching how the credit is granted.
func (s *ReturnService) approveInScope(ctx context.Context, repos uow.Repositories, request *trade.ReturnRequest, order *trade.Order) error {
	if err := request.Approve(); err != nil {
		return err
	}

	customerInvoice, err := repos.Invoices().FindByOrderAndType(ctx, order.ID, finance.InvoiceTypeCustomer)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("No customer invoice found for order %d", order.Code))
		}
		return err
	}

	totalReturned := decimal.Zero
	for i := range request.Items {
		item := &request.Items[i]
		product, err := repos.Products().FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if err := product.ApplyStockDelta(item.Quantity); err != nil {
			return err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}

		entry, err := inventory.NewStockTransaction(product.ID, inventory.TransactionTypeReturn, item.Quantity)
		if err != nil {
			return err
		}
		entry.WithSellPrice(product.SellPrice).WithOrder(order.ID).WithNote(item.Reason)
		if err := repos.StockTransactions().Append(ctx, entry); err != nil {
			return err
		}

		totalReturned = totalReturned.Add(product.SellPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	returnInvoice, err := finance.NewInvoice(finance.InvoiceTypeReturn, order.ID, customerInvoice.RecipientName, totalReturned)
	if err != nil {
		return err
	}
	return repos.Invoices().Save(ctx, returnInvoice)
}

// RejectReturnRequest rejects a pending request with a reason
func (s *ReturnService) RejectReturnRequest(ctx context.Context, id uuid.UUID, input RejectReturnRequestInput) (*ReturnRequestResponse, error) {
	var resp ReturnRequestResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		request, err := repos.Returns().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := request.Reject(input.Reason); err != nil {
			return err
		}
		if err := repos.Returns().Save(ctx, request); err != nil {
			return err
		}
		resp = ToReturnRequestResponse(request)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReturnToSupplier sends goods back to a supplier resolved by name. Every
// line must belong to that supplier and fit the available stock; the
// deduction is valued at buy price and summed into one supplier return
// invoice.
func (s *ReturnService) ReturnToSupplier(ctx context.Context, req ReturnToSupplierRequest) (*SupplierReturnResult, error) {
	var result SupplierReturnResult
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		matches, err := repos.Suppliers().FindByNameContaining(ctx, req.SupplierName)
		if err != nil {
			return err
		}
		switch {
		case len(matches) == 0:
			return shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("No supplier matches %q", req.SupplierName))
		case len(matches) > 1:
			return shared.NewDomainError("AMBIGUOUS_REFERENCE",
				fmt.Sprintf("%d suppliers match %q", len(matches), req.SupplierName))
		}
		supplier := &matches[0]

		totalValue := decimal.Zero
		for _, line := range req.Items {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.BelongsToSupplier(supplier.ID) {
				return shared.NewDomainError("INVALID_INPUT",
					fmt.Sprintf("Product %s is not supplied by %s", product.Name, supplier.Name))
			}
			if !product.HasSufficientStock(line.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", product.Name, line.Quantity, product.StockQuantity))
			}
			if err := product.ApplyStockDelta(-line.Quantity); err != nil {
				return err
			}
			if err := repos.Products().SaveWithLock(ctx, product); err != nil {
				return err
			}

			entry, err := inventory.NewStockTransaction(product.ID, inventory.TransactionTypeReturnToSupplier, -line.Quantity)
			if err != nil {
				return err
			}
			entry.WithBuyPrice(product.BuyPrice).WithSupplier(supplier.ID)
			if err := repos.StockTransactions().Append(ctx, entry); err != nil {
				return err
			}

			totalValue = totalValue.Add(product.BuyPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		invoice, err := finance.NewSupplierInvoice(finance.SupplierInvoiceTypeReturn, supplier.ID, supplier.Name, totalValue)
		if err != nil {
			return err
		}
		if err := repos.SupplierInvoices().Save(ctx, invoice); err != nil {
			return err
		}

		result = SupplierReturnResult{
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			InvoiceID:    invoice.ID,
			TotalValue:   totalValue,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SupplierReturnResult reports the outcome of a supplier return
type SupplierReturnResult struct {
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// ListPending returns pending return requests
func (s *ReturnService) ListPending(ctx context.Context, filter shared.Filter) ([]ReturnRequestResponse, error) {
	requests, err := s.returnRepo.FindByStatus(ctx, trade.ReturnStatusPending, filter)
	if err != nil {
		return nil, err
	}
	return ToReturnRequestResponses(requests), nil
}

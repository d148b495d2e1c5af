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

// DefaultCommissionRate is the sales commission rate applied at confirmation
// time when no rate is configured.
var DefaultCommissionRate = decimal.NewFromFloat(0.10)

// OrderService drives the order lifecycle: creation with price snapshots,
// confirmation with commission locking, and approval with atomic stock
// deduction and invoicing.
type OrderService struct {
	orderRepo      trade.OrderRepository
	txScope        uow.TransactionScope
	commissionRate decimal.Decimal
}

// NewOrderService creates a new OrderService with the default commission rate
func NewOrderService(orderRepo trade.OrderRepository, txScope uow.TransactionScope) *OrderService {
	return NewOrderServiceWithRate(orderRepo, txScope, DefaultCommissionRate)
}

// NewOrderServiceWithRate creates a new OrderService with a configured
// commission rate. The rate only affects orders confirmed after the change;
// confirmed orders keep the commission locked at their confirmation time.
func NewOrderServiceWithRate(orderRepo trade.OrderRepository, txScope uow.TransactionScope, commissionRate decimal.Decimal) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		txScope:        txScope,
		commissionRate: commissionRate,
	}
}

// buildItems resolves products, checks availability and snapshots sell
// prices. No stock is deducted here; availability is re-checked at approval.
func buildItems(ctx context.Context, repos uow.Repositories, inputs []CreateOrderItemInput) ([]trade.OrderItem, error) {
	items := make([]trade.OrderItem, 0, len(inputs))
	for _, input := range inputs {
		product, err := repos.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT",
					fmt.Sprintf("Product %s does not exist", input.ProductID))
			}
			return nil, err
		}
		if !product.HasSufficientStock(input.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", product.Name, input.Quantity, product.StockQuantity))
		}
		item, err := trade.NewOrderItem(uuid.Nil, product.ID, product.Name, input.Quantity, product.SellPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Create places a customer order in PENDING status
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		customer, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		items, err := buildItems(ctx, repos, req.Items)
		if err != nil {
			return err
		}
		code, err := repos.Orders().NextCode(ctx)
		if err != nil {
			return err
		}

		order, err := trade.NewOrder(code, customer.ID, customer.Name, items)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		resp = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateConfirmed places an order on behalf of a customer directly in
// CONFIRMED status with the commission pre-computed
func (s *OrderService) CreateConfirmed(ctx context.Context, req CreateConfirmedOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		customer, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		items, err := buildItems(ctx, repos, req.Items)
		if err != nil {
			return err
		}
		code, err := repos.Orders().NextCode(ctx)
		if err != nil {
			return err
		}

		order, err := trade.NewConfirmedOrder(code, customer.ID, customer.Name, req.SalesRepID, req.SalesRepName, items, s.commissionRate)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		resp = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm lets a sales rep claim a pending order, locking the commission at
// the current rate
func (s *OrderService) Confirm(ctx context.Context, orderID uuid.UUID, req ConfirmOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Confirm(req.SalesRepID, req.SalesRepName, s.commissionRate); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		resp = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Approve deducts stock for every order item and generates the customer and
// commission invoices. Each item's availability is re-checked against the
// current quantity; any failure aborts the whole approval, leaving no ledger
// entry, no invoice and no status change.
func (s *OrderService) Approve(ctx context.Context, orderID uuid.UUID, req ApproveOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Approve(req.ManagerID); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			product, err := repos.Products().FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.HasSufficientStock(item.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", product.Name, item.Quantity, product.StockQuantity))
			}
			if err := product.ApplyStockDelta(-item.Quantity); err != nil {
				return err
			}
			if err := repos.Products().SaveWithLock(ctx, product); err != nil {
				return err
			}

			entry, err := inventory.NewStockTransaction(product.ID, inventory.TransactionTypeStockOut, -item.Quantity)
			if err != nil {
				return err
			}
			entry.WithSellPrice(item.UnitPrice).WithOrder(order.ID).WithStoreManager(req.ManagerID)
			if err := repos.StockTransactions().Append(ctx, entry); err != nil {
				return err
			}
		}

		customerInvoice, err := finance.NewInvoice(finance.InvoiceTypeCustomer, order.ID, order.CustomerName, order.TotalAmount)
		if err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, customerInvoice); err != nil {
			return err
		}

		if order.HasSalesRep() {
			commissionInvoice, err := finance.NewInvoice(finance.InvoiceTypeCommission, order.ID, order.SalesRepName, order.CommissionAmount)
			if err != nil {
				return err
			}
			if err := repos.Invoices().Save(ctx, commissionInvoice); err != nil {
				return err
			}
		}

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		resp = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByCode returns an order by its human-facing code
func (s *OrderService) GetByCode(ctx context.Context, code int64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders, optionally filtered by status
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
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
	if filter.Status != nil {
		f.Filters["status"] = filter.Status.String()
	}

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToOrderResponses(orders), total, f.Page, f.PageSize)
	return &page, nil
}

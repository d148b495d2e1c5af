package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/application/uow"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockService handles stock movements: purchase receipts and cycle-count
// adjustments. Every quantity change is paired with a ledger append in the
// same unit of work.
type StockService struct {
	productRepo catalog.ProductRepository
	ledgerRepo  inventory.StockTransactionRepository
	txScope     uow.TransactionScope
}

// NewStockService creates a new StockService
func NewStockService(productRepo catalog.ProductRepository, ledgerRepo inventory.StockTransactionRepository, txScope uow.TransactionScope) *StockService {
	return &StockService{
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		txScope:     txScope,
	}
}

// StockIn receives purchased goods: increases stock, appends a StockIn ledger
// entry with the buy price snapshot, and creates the supplier invoice for the
// purchase, all atomically.
func (s *StockService) StockIn(ctx context.Context, req StockInRequest) (*StockTransactionResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock-in quantity must be positive")
	}
	if req.UnitBuyPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit buy price cannot be negative")
	}

	var resp StockTransactionResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		supplier, err := repos.Suppliers().FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}

		if err := product.ApplyStockDelta(req.Quantity); err != nil {
			return err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}

		entry, err := inventory.NewStockTransaction(product.ID, inventory.TransactionTypeStockIn, req.Quantity)
		if err != nil {
			return err
		}
		entry.WithBuyPrice(req.UnitBuyPrice).WithSupplier(supplier.ID).WithNote(req.Note)
		if err := repos.StockTransactions().Append(ctx, entry); err != nil {
			return err
		}

		amount := req.UnitBuyPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		invoice, err := finance.NewSupplierInvoice(finance.SupplierInvoiceTypePurchase, supplier.ID, supplier.Name, amount)
		if err != nil {
			return err
		}
		if err := repos.SupplierInvoices().Save(ctx, invoice); err != nil {
			return err
		}

		resp = ToStockTransactionResponse(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdjustStock reconciles the recorded quantity against a physical count.
// The difference is actual minus system; a surplus is a gain and a deficit a
// loss, both valued at buy price. With Apply unset the result is a preview
// and nothing is persisted.
func (s *StockService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*AdjustmentResult, error) {
	if req.ActualQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Actual quantity cannot be negative")
	}

	if !req.Apply {
		product, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		result := buildAdjustmentResult(product, req.ActualQuantity, false)
		return &result, nil
	}

	var result AdjustmentResult
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		result = buildAdjustmentResult(product, req.ActualQuantity, true)
		if result.Difference == 0 {
			result.Applied = false
			return nil
		}

		if err := product.ApplyStockDelta(result.Difference); err != nil {
			return err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}

		entry, err := inventory.NewStockTransaction(product.ID, inventory.TransactionTypeAdjustment, result.Difference)
		if err != nil {
			return err
		}
		entry.WithBuyPrice(product.BuyPrice).WithStoreManager(req.ManagerID).WithNote(result.Description)
		return repos.StockTransactions().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func buildAdjustmentResult(product *catalog.Product, actualQuantity int, applied bool) AdjustmentResult {
	difference := actualQuantity - product.StockQuantity
	impact := product.BuyPrice.Mul(decimal.NewFromInt(int64(difference)))

	var description string
	switch {
	case difference > 0:
		description = fmt.Sprintf("Surplus: found %d extra units of %s", difference, product.Name)
	case difference < 0:
		description = fmt.Sprintf("Deficit: missing %d units of %s", -difference, product.Name)
	default:
		description = fmt.Sprintf("Count matches recorded quantity for %s", product.Name)
	}

	return AdjustmentResult{
		ProductID:       product.ID,
		SystemQuantity:  product.StockQuantity,
		ActualQuantity:  actualQuantity,
		Difference:      difference,
		FinancialImpact: impact,
		Description:     description,
		Applied:         applied && difference != 0,
	}
}

// History returns the ledger entries for a product, newest first
func (s *StockService) History(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockTransactionResponse, error) {
	txs, err := s.ledgerRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return ToStockTransactionResponses(txs), nil
}

// TotalsByType folds the ledger per transaction type for a product
func (s *StockService) TotalsByType(ctx context.Context, productID uuid.UUID) ([]inventory.TypeTotal, error) {
	return s.ledgerRepo.TotalsByType(ctx, productID)
}

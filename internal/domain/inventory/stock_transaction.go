package inventory

import (
	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a stock movement
type TransactionType string

const (
	// TransactionTypeStockIn is a purchase receipt from a supplier
	TransactionTypeStockIn TransactionType = "stock_in"
	// TransactionTypeStockOut is a sale deduction on order approval
	TransactionTypeStockOut TransactionType = "stock_out"
	// TransactionTypeAdjustment is a cycle-count correction
	TransactionTypeAdjustment TransactionType = "adjustment"
	// TransactionTypeReturn is a customer return restock
	TransactionTypeReturn TransactionType = "return"
	// TransactionTypeReturnToSupplier is a deduction for goods sent back to a supplier
	TransactionTypeReturnToSupplier TransactionType = "return_to_supplier"
	// TransactionTypeUpdatedInByEmployee is a manual upward quantity correction
	TransactionTypeUpdatedInByEmployee TransactionType = "updated_in_by_employee"
	// TransactionTypeUpdatedOutByEmployee is a manual downward quantity correction
	TransactionTypeUpdatedOutByEmployee TransactionType = "updated_out_by_employee"
)

// String returns the string representation
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeStockIn, TransactionTypeStockOut, TransactionTypeAdjustment,
		TransactionTypeReturn, TransactionTypeReturnToSupplier,
		TransactionTypeUpdatedInByEmployee, TransactionTypeUpdatedOutByEmployee:
		return true
	}
	return false
}

// StockTransaction is one immutable entry in the stock ledger. The signed
// Quantity is the single source of truth for stock movement: the sum of all
// entries for a product must always equal the product's current quantity.
// Entries are never updated or deleted once written.
type StockTransaction struct {
	shared.BaseEntity
	ProductID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_stock_tx_product"`
	Type           TransactionType  `gorm:"type:varchar(30);not null;index:idx_stock_tx_type"`
	Quantity       int              `gorm:"not null"`
	UnitBuyPrice   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	UnitSellPrice  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	OrderID        *uuid.UUID       `gorm:"type:uuid;index"`
	SupplierID     *uuid.UUID       `gorm:"type:uuid;index"`
	StoreManagerID *uuid.UUID       `gorm:"type:uuid"`
	Note           string           `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a ledger entry with a signed quantity.
// The sign must agree with the type: increases are positive, decreases
// negative.
func NewStockTransaction(productID uuid.UUID, txType TransactionType, quantity int) (*StockTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid stock transaction type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock transaction quantity cannot be zero")
	}
	if txType != TransactionTypeAdjustment {
		if increases(txType) && quantity < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive for "+txType.String())
		}
		if !increases(txType) && quantity > 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be negative for "+txType.String())
		}
	}

	return &StockTransaction{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Type:       txType,
		Quantity:   quantity,
	}, nil
}

func increases(t TransactionType) bool {
	switch t {
	case TransactionTypeStockIn, TransactionTypeReturn, TransactionTypeUpdatedInByEmployee:
		return true
	}
	return false
}

// WithBuyPrice snapshots the unit buy price at movement time
func (t *StockTransaction) WithBuyPrice(price decimal.Decimal) *StockTransaction {
	t.UnitBuyPrice = &price
	return t
}

// WithSellPrice snapshots the unit sell price at movement time
func (t *StockTransaction) WithSellPrice(price decimal.Decimal) *StockTransaction {
	t.UnitSellPrice = &price
	return t
}

// WithOrder links the entry to the order that caused it
func (t *StockTransaction) WithOrder(orderID uuid.UUID) *StockTransaction {
	t.OrderID = &orderID
	return t
}

// WithSupplier links the entry to a supplier
func (t *StockTransaction) WithSupplier(supplierID uuid.UUID) *StockTransaction {
	t.SupplierID = &supplierID
	return t
}

// WithStoreManager records the manager who performed the movement
func (t *StockTransaction) WithStoreManager(managerID uuid.UUID) *StockTransaction {
	t.StoreManagerID = &managerID
	return t
}

// WithNote attaches a free-text note
func (t *StockTransaction) WithNote(note string) *StockTransaction {
	t.Note = note
	return t
}

// IsInbound reports whether the entry increased stock
func (t *StockTransaction) IsInbound() bool {
	return t.Quantity > 0
}

// IsOutbound reports whether the entry decreased stock
func (t *StockTransaction) IsOutbound() bool {
	return t.Quantity < 0
}

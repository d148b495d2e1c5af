package persistence

import (
	"context"

	"github.com/retaildist/backend/internal/application/uow"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/partner"
	"github.com/retaildist/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements uow.TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. All
// repositories passed to the function share the transaction connection.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

var _ uow.TransactionScope = (*GormTransactionScope)(nil)

// gormRepositories exposes transaction-bound repositories
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) StockTransactions() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

func (r *gormRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormRepositories) Returns() trade.ReturnRequestRepository {
	return NewGormReturnRequestRepository(r.tx)
}

func (r *gormRepositories) Invoices() finance.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormRepositories) SupplierInvoices() finance.SupplierInvoiceRepository {
	return NewGormSupplierInvoiceRepository(r.tx)
}

func (r *gormRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

var _ uow.Repositories = (*gormRepositories)(nil)

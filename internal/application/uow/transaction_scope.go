package uow

import (
	"context"

	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/partner"
	"github.com/retaildist/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Every quantity change, its paired ledger entry, and any
// invoice created by the same business operation go through one scope.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type Repositories interface {
	Products() catalog.ProductRepository
	StockTransactions() inventory.StockTransactionRepository
	Orders() trade.OrderRepository
	Returns() trade.ReturnRequestRepository
	Invoices() finance.InvoiceRepository
	SupplierInvoices() finance.SupplierInvoiceRepository
	Suppliers() partner.SupplierRepository
	Customers() partner.CustomerRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests that only need repository wiring.
type NoOpTransactionScope struct {
	ProductRepo          catalog.ProductRepository
	StockTransactionRepo inventory.StockTransactionRepository
	OrderRepo            trade.OrderRepository
	ReturnRepo           trade.ReturnRequestRepository
	InvoiceRepo          finance.InvoiceRepository
	SupplierInvoiceRepo  finance.SupplierInvoiceRepository
	SupplierRepo         partner.SupplierRepository
	CustomerRepo         partner.CustomerRepository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.ProductRepo
}

// StockTransactions returns the stock ledger repository
func (s *NoOpTransactionScope) StockTransactions() inventory.StockTransactionRepository {
	return s.StockTransactionRepo
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() trade.OrderRepository {
	return s.OrderRepo
}

// Returns returns the return request repository
func (s *NoOpTransactionScope) Returns() trade.ReturnRequestRepository {
	return s.ReturnRepo
}

// Invoices returns the invoice repository
func (s *NoOpTransactionScope) Invoices() finance.InvoiceRepository {
	return s.InvoiceRepo
}

// SupplierInvoices returns the supplier invoice repository
func (s *NoOpTransactionScope) SupplierInvoices() finance.SupplierInvoiceRepository {
	return s.SupplierInvoiceRepo
}

// Suppliers returns the supplier repository
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository {
	return s.SupplierRepo
}

// Customers returns the customer repository
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository {
	return s.CustomerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ Repositories = (*NoOpTransactionScope)(nil)

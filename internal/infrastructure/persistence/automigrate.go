package persistence

import (
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/finance"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/partner"
	"github.com/retaildist/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// Models lists every persisted domain type. Production schemas are managed
// by SQL migrations; this list backs AutoMigrate for test databases.
func Models() []any {
	return []any{
		&catalog.Product{},
		&inventory.StockTransaction{},
		&partner.Supplier{},
		&partner.Customer{},
		&trade.Order{},
		&trade.OrderItem{},
		&trade.ReturnRequest{},
		&trade.ReturnItem{},
		&finance.Invoice{},
		&finance.SupplierInvoice{},
	}
}

// AutoMigrate creates the schema for all persisted domain types
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

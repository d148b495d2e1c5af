package partner

import (
	"strings"
	"time"

	"github.com/retaildist/backend/internal/domain/shared"
)

// Supplier represents a goods supplier
type Supplier struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(200);not null;index"`
	ContactPhone string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactPhone, address string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name is required")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactPhone:      contactPhone,
		Address:           address,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, contactPhone, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Supplier name is required")
	}
	s.Name = name
	s.ContactPhone = contactPhone
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

package partner

import (
	"strings"
	"time"

	"github.com/retaildist/backend/internal/domain/shared"
)

// Customer represents a buying customer
type Customer struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(200);not null;index"`
	ContactPhone string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, contactPhone, address string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactPhone:      contactPhone,
		Address:           address,
	}, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, contactPhone, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	c.Name = name
	c.ContactPhone = contactPhone
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

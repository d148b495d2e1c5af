package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormReturnRequestRepository implements trade.ReturnRequestRepository using GORM
type GormReturnRequestRepository struct {
	db *gorm.DB
}

// NewGormReturnRequestRepository creates a new GormReturnRequestRepository
func NewGormReturnRequestRepository(db *gorm.DB) *GormReturnRequestRepository {
	return &GormReturnRequestRepository{db: db}
}

// FindByID finds a return request with its items by ID
func (r *GormReturnRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnRequest, error) {
	var request trade.ReturnRequest
	if err := r.db.WithContext(ctx).Preload("Items").First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByOrder finds return requests for an order
func (r *GormReturnRequestRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.ReturnRequest, error) {
	var requests []trade.ReturnRequest
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByStatus finds return requests in a status
func (r *GormReturnRequestRepository) FindByStatus(ctx context.Context, status trade.ReturnStatus, filter shared.Filter) ([]trade.ReturnRequest, error) {
	var requests []trade.ReturnRequest
	query := r.db.WithContext(ctx).Model(&trade.ReturnRequest{}).Preload("Items").
		Where("status = ?", status)
	if err := applyFilter(query, filter).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save persists a return request and its items
func (r *GormReturnRequestRepository) Save(ctx context.Context, request *trade.ReturnRequest) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(request).Error
}

var _ trade.ReturnRequestRepository = (*GormReturnRequestRepository)(nil)

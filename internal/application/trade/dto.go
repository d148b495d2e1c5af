package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateOrderItemInput is one requested product/quantity pair
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest creates an order in PENDING status
type CreateOrderRequest struct {
	CustomerID uuid.UUID              `json:"customer_id" binding:"required"`
	Items      []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateConfirmedOrderRequest is the manager path that creates an order
// directly in CONFIRMED status on behalf of a customer
type CreateConfirmedOrderRequest struct {
	CustomerID   uuid.UUID              `json:"customer_id" binding:"required"`
	SalesRepID   uuid.UUID              `json:"sales_rep_id" binding:"required"`
	SalesRepName string                 `json:"sales_rep_name" binding:"required,min=1,max=200"`
	Items        []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// ConfirmOrderRequest binds a sales rep to a pending order
type ConfirmOrderRequest struct {
	SalesRepID   uuid.UUID `json:"sales_rep_id" binding:"required"`
	SalesRepName string    `json:"sales_rep_name" binding:"required,min=1,max=200"`
}

// ApproveOrderRequest approves a confirmed order
type ApproveOrderRequest struct {
	ManagerID uuid.UUID `json:"manager_id" binding:"required"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   *trade.OrderStatus `form:"status"`
	Page     int                `form:"page" binding:"min=1"`
	PageSize int                `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string             `form:"order_by"`
	OrderDir string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	Code             int64               `json:"code"`
	CustomerID       uuid.UUID           `json:"customer_id"`
	CustomerName     string              `json:"customer_name"`
	SalesRepID       *uuid.UUID          `json:"sales_rep_id,omitempty"`
	SalesRepName     string              `json:"sales_rep_name,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	CommissionAmount decimal.Decimal     `json:"commission_amount"`
	Status           string              `json:"status"`
	ApprovedAt       *time.Time          `json:"approved_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		}
	}
	return OrderResponse{
		ID:               o.ID,
		Code:             o.Code,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		SalesRepID:       o.SalesRepID,
		SalesRepName:     o.SalesRepName,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		CommissionAmount: o.CommissionAmount,
		Status:           o.Status.String(),
		ApprovedAt:       o.ApprovedAt,
		CreatedAt:        o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders to response DTOs
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// ReturnLineInput is one requested return line
type ReturnLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Reason    string    `json:"reason"`
}

// CreateReturnRequestInput creates a customer return against an order code
type CreateReturnRequestInput struct {
	OrderCode int64             `json:"order_code" binding:"required"`
	Items     []ReturnLineInput `json:"items" binding:"required,min=1,dive"`
}

// RejectReturnRequestInput rejects a pending return request
type RejectReturnRequestInput struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// SupplierReturnLineInput is one product/quantity pair to send back
type SupplierReturnLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// ReturnToSupplierRequest returns goods to a supplier resolved by name
type ReturnToSupplierRequest struct {
	SupplierName string                    `json:"supplier_name" binding:"required,min=1,max=200"`
	Items        []SupplierReturnLineInput `json:"items" binding:"required,min=1,dive"`
}

// ReturnItemResponse represents a return line in API responses
type ReturnItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
}

// ReturnRequestResponse represents a return request in API responses
type ReturnRequestResponse struct {
	ID              uuid.UUID            `json:"id"`
	OrderID         uuid.UUID            `json:"order_id"`
	OrderCode       int64                `json:"order_code"`
	CustomerID      uuid.UUID            `json:"customer_id"`
	Status          string               `json:"status"`
	Items           []ReturnItemResponse `json:"items"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	ResolvedAt      *time.Time           `json:"resolved_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// ToReturnRequestResponse converts a domain return request to a response DTO
func ToReturnRequestResponse(r *trade.ReturnRequest) ReturnRequestResponse {
	items := make([]ReturnItemResponse, len(r.Items))
	for i := range r.Items {
		items[i] = ReturnItemResponse{
			ProductID: r.Items[i].ProductID,
			Quantity:  r.Items[i].Quantity,
			Reason:    r.Items[i].Reason,
		}
	}
	return ReturnRequestResponse{
		ID:              r.ID,
		OrderID:         r.OrderID,
		OrderCode:       r.OrderCode,
		CustomerID:      r.CustomerID,
		Status:          r.Status.String(),
		Items:           items,
		RejectionReason: r.RejectionReason,
		ResolvedAt:      r.ResolvedAt,
		CreatedAt:       r.CreatedAt,
	}
}

// ToReturnRequestResponses converts a slice of return requests to response DTOs
func ToReturnRequestResponses(requests []trade.ReturnRequest) []ReturnRequestResponse {
	responses := make([]ReturnRequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToReturnRequestResponse(&requests[i])
	}
	return responses
}

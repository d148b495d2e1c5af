package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/retaildist/backend/internal/application/trade"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.POST("/confirmed", h.CreateConfirmed)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.GET("/code/:code", h.GetByCode)
		orders.POST("/:id/confirm", h.Confirm)
		orders.POST("/:id/approve", h.Approve)
	}
}

// Create creates a pending order
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// CreateConfirmed creates an order directly in confirmed status
func (h *OrderHandler) CreateConfirmed(c *gin.Context) {
	var req tradeapp.CreateConfirmedOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.CreateConfirmed(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get retrieves an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByCode retrieves an order by its numeric code
func (h *OrderHandler) GetByCode(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order code format")
		return
	}

	order, err := h.orderService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns a paginated order list
func (h *OrderHandler) List(c *gin.Context) {
	filter := tradeapp.OrderListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Confirm binds a sales rep to a pending order and locks the commission
func (h *OrderHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Approve approves a confirmed order, deducting stock and generating invoices
func (h *OrderHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.ApproveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/retaildist/backend/internal/application/trade"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/interfaces/http/dto"
)

// ReturnHandler handles customer and supplier return endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *tradeapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// RegisterRoutes registers return routes on the given group
func (h *ReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/returns")
	{
		returns.POST("", h.Create)
		returns.GET("/pending", h.ListPending)
		returns.POST("/:id/approve", h.Approve)
		returns.POST("/:id/reject", h.Reject)
		returns.POST("/supplier", h.ReturnToSupplier)
	}
}

// Create files a customer return against an order code
func (h *ReturnHandler) Create(c *gin.Context) {
	var input tradeapp.CreateReturnRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.returnService.CreateReturnRequest(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// ListPending lists return requests awaiting resolution
func (h *ReturnHandler) ListPending(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}

	requests, err := h.returnService.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requests)
}

// Approve approves a pending return request
func (h *ReturnHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return request ID format")
		return
	}

	request, err := h.returnService.ApproveReturnRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Reject rejects a pending return request
func (h *ReturnHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return request ID format")
		return
	}

	var input tradeapp.RejectReturnRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.returnService.RejectReturnRequest(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// ReturnToSupplier sends goods back to a supplier resolved by name
func (h *ReturnHandler) ReturnToSupplier(c *gin.Context) {
	var req tradeapp.ReturnToSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.returnService.ReturnToSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

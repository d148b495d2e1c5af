package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/retaildist/backend/internal/application/inventory"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles stock ledger endpoints
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/stock-in", h.StockIn)
		inventory.POST("/adjustments", h.Adjust)
		inventory.GET("/products/:id/transactions", h.History)
		inventory.GET("/products/:id/totals", h.TotalsByType)
	}
}

// StockIn records a purchase receipt from a supplier
func (h *InventoryHandler) StockIn(c *gin.Context) {
	var req inventoryapp.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.stockService.StockIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// Adjust runs a cycle-count reconciliation. With apply=false the caller
// gets a preview of the discrepancy without any changes being committed.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stockService.AdjustStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// History lists the stock ledger entries for a product
func (h *InventoryHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

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

	history, err := h.stockService.History(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// TotalsByType returns per-type quantity totals for a product's ledger
func (h *InventoryHandler) TotalsByType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	totals, err := h.stockService.TotalsByType(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}

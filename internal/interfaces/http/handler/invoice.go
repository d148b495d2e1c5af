package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/retaildist/backend/internal/application/finance"
	"github.com/retaildist/backend/internal/domain/shared"
	"github.com/retaildist/backend/internal/interfaces/http/dto"
)

// InvoiceHandler handles invoice and settlement endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *financeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *financeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes on the given group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/statements", h.Statements)
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/payments", h.ApplyPayment)
		invoices.GET("/order/:orderId", h.GetByOrder)
	}

	supplierInvoices := rg.Group("/supplier-invoices")
	{
		supplierInvoices.GET("", h.ListSupplierInvoices)
		supplierInvoices.POST("/:id/payments", h.ApplySupplierPayment)
	}
}

// Get retrieves an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByOrder lists the invoices generated for an order
func (h *InvoiceHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	invoices, err := h.invoiceService.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}

// List returns a paginated invoice list
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := financeapp.InvoiceListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Statements returns each recipient's most recent invoice
func (h *InvoiceHandler) Statements(c *gin.Context) {
	statements, err := h.invoiceService.Statements(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statements)
}

// ApplyPayment applies a payment against a customer invoice.
// Payments exceeding the remaining balance are rejected whole.
func (h *InvoiceHandler) ApplyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req financeapp.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.ApplyPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListSupplierInvoices returns a paginated supplier invoice list
func (h *InvoiceHandler) ListSupplierInvoices(c *gin.Context) {
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

	result, err := h.invoiceService.ListSupplierInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ApplySupplierPayment applies a payment against a supplier invoice
func (h *InvoiceHandler) ApplySupplierPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req financeapp.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.ApplySupplierPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/retaildist/backend/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes on the given group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.PUT("/:id/quantity", h.UpdateQuantity)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/restore", h.Restore)
	}
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Get retrieves a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns a paginated product list
func (h *ProductHandler) List(c *gin.Context) {
	filter := catalogapp.ProductListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates product name and prices
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// UpdateQuantity records a manual stock-quantity correction
func (h *ProductHandler) UpdateQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateQuantity(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete soft-deletes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore restores a soft-deleted product
func (h *ProductHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.Restore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"tokopos/internal/domain/catalog/product"
	"tokopos/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves product catalog routes.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	productID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.ProductListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ProductListResponse{
		Products:   result.Items,
		Pagination: dto.NewPaginationResponse(result),
	})
}

// Update handles PATCH /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	productID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), tenantID, productID, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	productID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// ListLowStock handles GET /products/low-stock.
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.ProductListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.ListLowStock(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ProductListResponse{
		Products:   result.Items,
		Pagination: dto.NewPaginationResponse(result),
	})
}

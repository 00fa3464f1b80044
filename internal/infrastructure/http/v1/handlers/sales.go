package handlers

import (
	"github.com/gin-gonic/gin"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/sales"
	"tokopos/internal/infrastructure/http/v1/dto"
	"tokopos/internal/infrastructure/http/v1/middleware"
)

// SalesHandler serves sale creation and lookup routes.
type SalesHandler struct {
	*BaseHandler
	service *sales.Service
	metrics *middleware.Metrics
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(service *sales.Service, metrics *middleware.Metrics) *SalesHandler {
	return &SalesHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		metrics:     metrics,
	}
}

// Create handles POST /sales.
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	sale, err := h.service.CreateSale(c.Request.Context(), tenantID, input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.metrics.RecordSaleCreated()

	h.Created(c, dto.NewSaleResponse(middleware.GetLocalizer(c).T("sales.created"), sale))
}

// GetByID handles GET /sales/:id. The lookup is by sale ID alone; a
// tenant_id query narrows it when the terminal supplies one.
func (h *SalesHandler) GetByID(c *gin.Context) {
	saleID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	tenantID := id.Nil()
	if raw := c.Query("tenant_id"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewInvalidFormat("tenant_id must be a valid UUID").
				WithDetail("field", "tenant_id"))
			return
		}
		tenantID = parsed
	}

	sale, err := h.service.GetByID(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewSaleResponse("", sale))
}

// List handles GET /sales.
func (h *SalesHandler) List(c *gin.Context) {
	var req dto.SaleListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	tenantID, filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewSaleListResponse(result))
}

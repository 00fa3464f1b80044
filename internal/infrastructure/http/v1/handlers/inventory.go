package handlers

import (
	"github.com/gin-gonic/gin"

	"tokopos/internal/domain/inventory"
	"tokopos/internal/infrastructure/http/v1/dto"
	"tokopos/internal/infrastructure/http/v1/middleware"
)

// InventoryHandler serves stock adjustment and movement ledger routes.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
	metrics *middleware.Metrics
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service *inventory.Service, metrics *middleware.Metrics) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		metrics:     metrics,
	}
}

// AdjustStock handles POST /inventory/stock-adjustment.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.StockAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.AdjustStock(c.Request.Context(), tenantID, input)
	if err != nil {
		h.metrics.RecordAdjustment(false)
		h.Error(c, err)
		return
	}
	h.metrics.RecordAdjustment(true)

	msg := middleware.GetLocalizer(c).T("inventory.adjusted")
	h.OK(c, dto.NewStockAdjustmentResponse(msg, result))
}

// ListMovements handles GET /inventory/movements.
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.MovementListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.ListMovements(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.MovementListResponse{
		Movements:  result.Items,
		Pagination: dto.NewPaginationResponse(result),
	})
}

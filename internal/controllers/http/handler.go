package http

import (
	"errors"
	"net/http"
	"strconv"

	"backorder-service/internal/domain"
	"backorder-service/internal/middleware"
	"backorder-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ledger     *services.LedgerService
	stockSync  *services.StockSyncService
	adminToken string
}

func NewHandler(ledger *services.LedgerService, stockSync *services.StockSyncService, adminToken string) *Handler {
	return &Handler{ledger: ledger, stockSync: stockSync, adminToken: adminToken}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	r.GET("/backorders", h.ListRecords)
	r.GET("/backorders/:itemId/progress", h.GetProgress)
	r.POST("/orders/completed", h.OrderCompleted)
	r.POST("/cart/validate", h.ValidateCart)

	admin := middleware.AdminToken(h.adminToken)
	r.PUT("/backorders/policies", admin, h.SetPolicies)
	r.POST("/products/:productId/sync-manage-stock", admin, h.SyncManageStock)
}

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.ledger.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// SetPolicies applies a batch of admin edits, one item at a time. A failed
// item is reported in its slot and never rolls back the others.
func (h *Handler) SetPolicies(c *gin.Context) {
	var req SetPoliciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	results := make([]PolicyUpdateResult, 0, len(req.Policies))
	for _, p := range req.Policies {
		res := PolicyUpdateResult{ItemID: p.ItemID, OK: true}
		if err := h.ledger.SetPolicy(ctx, p.ItemID, domain.BackorderMode(p.Mode), p.Limit); err != nil {
			res.OK = false
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) OrderCompleted(c *gin.Context) {
	var req OrderCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.ledger.ApplyOrderCompleted(c.Request.Context(), req.OrderNo, toOrderLines(req.Items))
	if err != nil {
		if errors.Is(err, services.ErrOrderAlreadyApplied) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) ValidateCart(c *gin.Context) {
	var req CartValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.ledger.ValidateCart(c.Request.Context(), toOrderLines(req.Items))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": true, "results": results})
}

func (h *Handler) GetProgress(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId must be a number"})
		return
	}

	view, err := h.ledger.Progress(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) SyncManageStock(c *gin.Context) {
	parentID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId must be a number"})
		return
	}

	synced, err := h.stockSync.SyncManageStock(c.Request.Context(), parentID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"synced": synced})
}

func toOrderLines(items []OrderLineRequest) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.OrderLine{
			ProductID:   it.ProductID,
			VariationID: it.VariationID,
			Quantity:    it.Quantity,
		})
	}
	return lines
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

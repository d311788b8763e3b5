package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// PricingHandler handles price calculation HTTP requests
type PricingHandler struct {
	pricingService services.PricingService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricingService services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// CalculatePrice handles POST /pricing/calculate
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var req models.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	result, err := h.pricingService.CalculatePrice(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CalculateBulkPrice handles POST /pricing/calculate-bulk
func (h *PricingHandler) CalculateBulkPrice(c *gin.Context) {
	var req models.BulkPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	result, err := h.pricingService.CalculateBulkPrice(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetQuote handles POST /pricing/quote. No side effects; safe on the public
// group for price previews.
func (h *PricingHandler) GetQuote(c *gin.Context) {
	var req models.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	quote, err := h.pricingService.GetQuote(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CalculateRevenueProjection handles GET /pricing/projection
func (h *PricingHandler) CalculateRevenueProjection(c *gin.Context) {
	opType := models.OperationType(c.Query("operationType"))
	if !opType.IsValid() {
		respondError(c, models.NewValidationError("operationType", "unknown operation type "+c.Query("operationType")))
		return
	}
	scope, err := parseScopeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	volume, err := strconv.Atoi(c.DefaultQuery("estimatedVolume", "0"))
	if err != nil {
		respondError(c, models.NewValidationError("estimatedVolume", "must be an integer"))
		return
	}

	projection, err := h.pricingService.CalculateRevenueProjection(c, opType, scope, volume)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection)
}

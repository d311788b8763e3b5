package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// OutletHandler handles outlet-related HTTP requests
type OutletHandler struct {
	outletService services.OutletService
}

// NewOutletHandler creates a new OutletHandler
func NewOutletHandler(outletService services.OutletService) *OutletHandler {
	return &OutletHandler{outletService: outletService}
}

// CreateOutlet handles POST /outlets
func (h *OutletHandler) CreateOutlet(c *gin.Context) {
	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	if err := h.outletService.CreateOutlet(c, &outlet); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, outlet)
}

// GetOutletByID handles GET /outlets/:id
func (h *OutletHandler) GetOutletByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	outlet, err := h.outletService.GetOutletByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outlet)
}

// GetAllOutlets handles GET /outlets
func (h *OutletHandler) GetAllOutlets(c *gin.Context) {
	page, limit := parsePagination(c)
	outlets, err := h.outletService.GetAllOutlets(c, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outlets)
}

// UpdateOutlet handles PUT /outlets/:id
func (h *OutletHandler) UpdateOutlet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	outlet.ID = id
	if err := h.outletService.UpdateOutlet(c, &outlet); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outlet)
}

// DeactivateOutlet handles DELETE /outlets/:id
func (h *OutletHandler) DeactivateOutlet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	if err := h.outletService.DeactivateOutlet(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "outlet deactivated"})
}

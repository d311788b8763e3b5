package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// CylinderHandler handles cylinder-related HTTP requests
type CylinderHandler struct {
	cylinderService services.CylinderService
}

// NewCylinderHandler creates a new CylinderHandler
func NewCylinderHandler(cylinderService services.CylinderService) *CylinderHandler {
	return &CylinderHandler{cylinderService: cylinderService}
}

// CreateCylinder handles POST /cylinders
func (h *CylinderHandler) CreateCylinder(c *gin.Context) {
	var cylinder models.Cylinder
	if err := c.ShouldBindJSON(&cylinder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	if err := h.cylinderService.CreateCylinder(c, &cylinder); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cylinder)
}

// GetCylinderByID handles GET /cylinders/:id
func (h *CylinderHandler) GetCylinderByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	cylinder, err := h.cylinderService.GetCylinderByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

// GetCylindersByOutlet handles GET /cylinders/outlet/:id
func (h *CylinderHandler) GetCylindersByOutlet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	page, limit := parsePagination(c)
	cylinders, err := h.cylinderService.GetCylindersByOutlet(c, id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cylinders)
}

// GetCylindersByStatus handles GET /cylinders/status/:status
func (h *CylinderHandler) GetCylindersByStatus(c *gin.Context) {
	page, limit := parsePagination(c)
	cylinders, err := h.cylinderService.GetCylindersByStatus(c, models.CylinderStatus(c.Param("status")), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cylinders)
}

// UpdateCylinder handles PUT /cylinders/:id
func (h *CylinderHandler) UpdateCylinder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var cylinder models.Cylinder
	if err := c.ShouldBindJSON(&cylinder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	cylinder.ID = id
	if err := h.cylinderService.UpdateCylinder(c, &cylinder); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

// transferRequest is the body of POST /cylinders/:id/transfer
type transferRequest struct {
	ToOutletID primitive.ObjectID `json:"toOutletId" binding:"required"`
}

// Transfer handles POST /cylinders/:id/transfer
func (h *CylinderHandler) Transfer(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	op, err := h.cylinderService.Transfer(c, id, req.ToOutletID, actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// refillRequest is the body of POST /cylinders/:id/refill
type refillRequest struct {
	CustomerID *primitive.ObjectID `json:"customerId,omitempty"`
	GasAmount  float64             `json:"gasAmount" binding:"required"`
}

// Refill handles POST /cylinders/:id/refill
func (h *CylinderHandler) Refill(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var req refillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	op, err := h.cylinderService.Refill(c, id, req.CustomerID, req.GasAmount, actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// swapRequest is the body of POST /cylinders/:id/swap
type swapRequest struct {
	CustomerID *primitive.ObjectID      `json:"customerId,omitempty"`
	Condition  models.CylinderCondition `json:"condition" binding:"required"`
}

// Swap handles POST /cylinders/:id/swap
func (h *CylinderHandler) Swap(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	op, err := h.cylinderService.Swap(c, id, req.CustomerID, req.Condition, actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// GetOperationsByType handles GET /operations/type/:type
func (h *CylinderHandler) GetOperationsByType(c *gin.Context) {
	page, limit := parsePagination(c)
	ops, err := h.cylinderService.GetOperationsByType(c, models.OperationType(c.Param("type")), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ops)
}

// GetOperations handles GET /cylinders/:id/operations
func (h *CylinderHandler) GetOperations(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	page, limit := parsePagination(c)
	ops, err := h.cylinderService.GetOperationsByCylinder(c, id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ops)
}

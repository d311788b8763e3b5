package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// LeaseHandler handles lease-related HTTP requests
type LeaseHandler struct {
	leaseService services.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService services.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// CreateLease handles POST /leases
func (h *LeaseHandler) CreateLease(c *gin.Context) {
	var req services.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	lease, err := h.leaseService.CreateLease(c, req, actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lease)
}

// returnLeaseRequest is the body of POST /leases/:id/return
type returnLeaseRequest struct {
	Condition models.CylinderCondition `json:"condition" binding:"required"`
}

// ReturnLease handles POST /leases/:id/return
func (h *LeaseHandler) ReturnLease(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var req returnLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	lease, err := h.leaseService.ReturnLease(c, id, req.Condition, actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lease)
}

// GetLeaseByID handles GET /leases/:id
func (h *LeaseHandler) GetLeaseByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	lease, err := h.leaseService.GetLeaseByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lease)
}

// GetLeasesByCustomer handles GET /leases/customer/:id
func (h *LeaseHandler) GetLeasesByCustomer(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	page, limit := parsePagination(c)
	leases, err := h.leaseService.GetLeasesByCustomer(c, id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leases)
}

// GetLeasesByOutlet handles GET /leases/outlet/:id
func (h *LeaseHandler) GetLeasesByOutlet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	page, limit := parsePagination(c)
	leases, err := h.leaseService.GetLeasesByOutlet(c, id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leases)
}

// GetLeasesByStatus handles GET /leases/status/:status
func (h *LeaseHandler) GetLeasesByStatus(c *gin.Context) {
	page, limit := parsePagination(c)
	leases, err := h.leaseService.GetLeasesByStatus(c, models.LeaseStatus(c.Param("status")), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leases)
}

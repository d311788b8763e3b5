package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	if err := h.customerService.CreateCustomer(c, &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomerByID handles GET /customers/:id
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	customer, err := h.customerService.GetCustomerByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetAllCustomers handles GET /customers
func (h *CustomerHandler) GetAllCustomers(c *gin.Context) {
	page, limit := parsePagination(c)
	customers, err := h.customerService.GetAllCustomers(c, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	customer.ID = id
	if err := h.customerService.UpdateCustomer(c, &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeactivateCustomer handles DELETE /customers/:id
func (h *CustomerHandler) DeactivateCustomer(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	if err := h.customerService.DeactivateCustomer(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deactivated"})
}

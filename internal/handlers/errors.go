package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// respondError maps the service error taxonomy to stable HTTP status codes so
// API consumers can branch on kind rather than message text.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		decodeErr     *models.SettingDecodeError
		pricingErr    *models.PricingConfigurationError
		notFoundErr   *models.NotFoundError
		conflictErr   *models.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "conflict"})
	case errors.As(err, &pricingErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "pricing_configuration", "key": pricingErr.Key})
	case errors.As(err, &decodeErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": "setting_decode", "key": decodeErr.Key})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "kind": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// actingUserID reads the authenticated user id set by the JWT middleware
func actingUserID(c *gin.Context) string {
	if userID, exists := c.Get("userID"); exists {
		if s, ok := userID.(string); ok {
			return s
		}
	}
	return ""
}

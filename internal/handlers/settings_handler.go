package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/services"
)

// SettingsHandler handles setting-related HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// parseScopeQuery parses the scope dimensions out of query parameters once,
// at the boundary, into the typed scope structure
func parseScopeQuery(c *gin.Context) (models.SettingScope, error) {
	var scope models.SettingScope
	if raw := c.Query("outletId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return scope, models.NewValidationError("outletId", "must be a valid object id")
		}
		scope.OutletID = &id
	}
	if raw := c.Query("cylinderType"); raw != "" {
		scope.CylinderType = &raw
	}
	if raw := c.Query("operationType"); raw != "" {
		op := models.OperationType(raw)
		if !op.IsValid() {
			return scope, models.NewValidationError("operationType", "unknown operation type "+raw)
		}
		scope.OperationType = &op
	}
	return scope, nil
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	return page, limit
}

// ResolveSetting handles GET /settings/resolve
func (h *SettingsHandler) ResolveSetting(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		respondError(c, models.NewValidationError("key", "key query parameter is required"))
		return
	}
	scope, err := parseScopeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	setting, value, err := h.settingsService.Resolve(c, key, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting, "value": value})
}

// SetSetting handles POST /settings (create-or-update by key and scope)
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	var req services.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	setting, err := h.settingsService.SetSetting(c, req, actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSetting handles DELETE /settings/:id (soft-deactivate)
func (h *SettingsHandler) DeleteSetting(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	if err := h.settingsService.DeleteSetting(c, id, actingUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "setting deactivated"})
}

// GetSettingByID handles GET /settings/:id
func (h *SettingsHandler) GetSettingByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	setting, err := h.settingsService.GetSettingByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// ListSettings handles GET /settings
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	page, limit := parsePagination(c)
	settings, err := h.settingsService.ListSettings(c, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListSettingsByCategory handles GET /settings/category/:id
func (h *SettingsHandler) ListSettingsByCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError("id", "must be a valid object id"))
		return
	}
	page, limit := parsePagination(c)
	settings, err := h.settingsService.ListSettingsByCategory(c, id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// CreateCategory handles POST /setting-categories
func (h *SettingsHandler) CreateCategory(c *gin.Context) {
	var category models.SettingCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	if err := h.settingsService.CreateCategory(c, &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// ListCategories handles GET /setting-categories
func (h *SettingsHandler) ListCategories(c *gin.Context) {
	categories, err := h.settingsService.ListCategories(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

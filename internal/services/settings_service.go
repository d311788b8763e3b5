package services

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// Compile-time check to ensure SettingsServiceImpl implements SettingsService
var _ SettingsService = (*SettingsServiceImpl)(nil)

// SettingsServiceImpl implements SettingsService: the setting store contract
// plus scoped resolution
type SettingsServiceImpl struct {
	settingRepo  repositories.SettingRepository
	categoryRepo repositories.SettingCategoryRepository
}

// NewSettingsService creates a new SettingsServiceImpl
func NewSettingsService(settingRepo repositories.SettingRepository, categoryRepo repositories.SettingCategoryRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		settingRepo:  settingRepo,
		categoryRepo: categoryRepo,
	}
}

// Resolve selects the single effective setting for (key, scope) and decodes
// its value.
//
// Candidates are the active settings sharing the normalized key whose every
// scope dimension is either a wildcard or equal to the requested value. The
// winner is the candidate with the highest specificity (count of non-wildcard
// dimensions); ties go to the most recently updated record, then the lowest
// id, so concurrent admin edits cannot flip-flop the answer between calls.
func (s *SettingsServiceImpl) Resolve(ctx context.Context, key string, scope models.SettingScope) (*models.Setting, interface{}, error) {
	normalized := models.NormalizeSettingKey(key)

	candidates, err := s.settingRepo.FindActiveByKey(ctx, normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch settings for key %q: %w", normalized, err)
	}

	matched := candidates[:0]
	for _, c := range candidates {
		if c.Scope().Matches(scope) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil, nil, models.NewNotFoundError("setting", normalized)
	}

	sort.Slice(matched, func(i, j int) bool {
		si, sj := matched[i].Scope().Specificity(), matched[j].Scope().Specificity()
		if si != sj {
			return si > sj
		}
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})

	winner := matched[0]
	value, err := decodeSettingValue(winner)
	if err != nil {
		slog.Error("Stored setting value failed to decode", "key", normalized, "settingId", winner.ID.Hex(), "error", err)
		return nil, nil, err
	}
	return winner, value, nil
}

// ResolveNumber resolves a key whose winner must decode to a float64
func (s *SettingsServiceImpl) ResolveNumber(ctx context.Context, key string, scope models.SettingScope) (float64, error) {
	setting, value, err := s.Resolve(ctx, key, scope)
	if err != nil {
		return 0, err
	}
	n, ok := value.(float64)
	if !ok {
		return 0, &models.SettingDecodeError{Key: setting.Key, DataType: models.DataTypeNumber, RawValue: setting.Value}
	}
	return n, nil
}

// ResolveString resolves a key whose winner must decode to a string
func (s *SettingsServiceImpl) ResolveString(ctx context.Context, key string, scope models.SettingScope) (string, error) {
	setting, value, err := s.Resolve(ctx, key, scope)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", &models.SettingDecodeError{Key: setting.Key, DataType: models.DataTypeString, RawValue: setting.Value}
	}
	return str, nil
}

// ResolveBool resolves a key whose winner must decode to a bool
func (s *SettingsServiceImpl) ResolveBool(ctx context.Context, key string, scope models.SettingScope) (bool, error) {
	setting, value, err := s.Resolve(ctx, key, scope)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, &models.SettingDecodeError{Key: setting.Key, DataType: models.DataTypeBoolean, RawValue: setting.Value}
	}
	return b, nil
}

// SetSetting creates or updates the setting at (key, scope). The value is
// validated against the declared data type and stored in canonical form; a
// write to an existing tuple supersedes it in place and reactivates it.
func (s *SettingsServiceImpl) SetSetting(ctx context.Context, req SetSettingRequest, actingUserID string) (*models.Setting, error) {
	normalized := models.NormalizeSettingKey(req.Key)
	if normalized == "" {
		return nil, models.NewValidationError("key", "key must not be empty")
	}
	if req.Scope.OperationType != nil && !req.Scope.OperationType.IsValid() {
		return nil, models.NewValidationError("scope.operationType", fmt.Sprintf("unknown operation type %q", *req.Scope.OperationType))
	}

	canonical, err := validateSettingValue(normalized, req.DataType, req.Value)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, models.NewNotFoundError("setting category", req.CategoryID.Hex())
			}
			return nil, fmt.Errorf("failed to check setting category: %w", err)
		}
	}

	existing, err := s.settingRepo.FindByKeyAndScope(ctx, normalized, req.Scope)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check for existing setting %q: %w", normalized, err)
	}

	if existing != nil {
		existing.Value = canonical
		existing.DataType = req.DataType
		existing.CategoryID = req.CategoryID
		existing.IsActive = true
		existing.UpdatedBy = actingUserID
		if err := s.settingRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		slog.Info("Setting updated", "key", normalized, "settingId", existing.ID.Hex(), "updatedBy", actingUserID, "reason", req.Reason)
		return existing, nil
	}

	setting := &models.Setting{
		CategoryID:    req.CategoryID,
		Key:           normalized,
		Value:         canonical,
		DataType:      req.DataType,
		OutletID:      req.Scope.OutletID,
		CylinderType:  req.Scope.CylinderType,
		OperationType: req.Scope.OperationType,
		IsActive:      true,
		CreatedBy:     actingUserID,
		UpdatedBy:     actingUserID,
	}
	if err := s.settingRepo.Create(ctx, setting); err != nil {
		return nil, err
	}
	slog.Info("Setting created", "key", normalized, "settingId", setting.ID.Hex(), "createdBy", actingUserID, "reason", req.Reason)
	return setting, nil
}

// DeleteSetting soft-deactivates a setting. The record stays in place for
// audit history; it simply stops resolving.
func (s *SettingsServiceImpl) DeleteSetting(ctx context.Context, id primitive.ObjectID, actingUserID string) error {
	err := s.settingRepo.Deactivate(ctx, id, actingUserID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.NewNotFoundError("setting", id.Hex())
		}
		return err
	}
	slog.Info("Setting deactivated", "settingId", id.Hex(), "deactivatedBy", actingUserID)
	return nil
}

// GetSettingByID retrieves one setting record
func (s *SettingsServiceImpl) GetSettingByID(ctx context.Context, id primitive.ObjectID) (*models.Setting, error) {
	setting, err := s.settingRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("setting", id.Hex())
		}
		return nil, err
	}
	return setting, nil
}

// ListSettings lists all settings with pagination
func (s *SettingsServiceImpl) ListSettings(ctx context.Context, page, limit int) ([]*models.Setting, error) {
	return s.settingRepo.FindAll(ctx, page, limit)
}

// ListSettingsByCategory lists the settings grouped under a category
func (s *SettingsServiceImpl) ListSettingsByCategory(ctx context.Context, categoryID primitive.ObjectID, page, limit int) ([]*models.Setting, error) {
	return s.settingRepo.FindByCategory(ctx, categoryID, page, limit)
}

// CreateCategory creates a settings grouping category
func (s *SettingsServiceImpl) CreateCategory(ctx context.Context, category *models.SettingCategory) error {
	if category.Name == "" {
		return models.NewValidationError("name", "name must not be empty")
	}
	existing, err := s.categoryRepo.FindByName(ctx, category.Name)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check for existing category: %w", err)
	}
	if existing != nil {
		return &models.ConflictError{Resource: "setting category", Message: fmt.Sprintf("category %q already exists", category.Name)}
	}
	return s.categoryRepo.Create(ctx, category)
}

// ListCategories lists all setting categories
func (s *SettingsServiceImpl) ListCategories(ctx context.Context) ([]*models.SettingCategory, error) {
	return s.categoryRepo.FindAll(ctx)
}

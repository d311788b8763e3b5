// Package memory provides in-process repository implementations used by tests.
// They mirror the mongodb implementations' behavior, including returning
// mongo.ErrNoDocuments for missing records, so services behave identically
// against either store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// SettingRepository is a map-backed repositories.SettingRepository
type SettingRepository struct {
	mu       sync.RWMutex
	settings map[primitive.ObjectID]*models.Setting
}

// NewSettingRepository creates an empty in-memory SettingRepository
func NewSettingRepository() repositories.SettingRepository {
	return &SettingRepository{
		settings: make(map[primitive.ObjectID]*models.Setting),
	}
}

func clone(s *models.Setting) *models.Setting {
	c := *s
	return &c
}

// Create inserts a new setting, assigning an id
func (r *SettingRepository) Create(ctx context.Context, setting *models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if setting.ID.IsZero() {
		setting.ID = primitive.NewObjectID()
	}
	setting.CreatedAt = time.Now()
	setting.UpdatedAt = time.Now()
	r.settings[setting.ID] = clone(setting)
	return nil
}

// Update replaces an existing setting
func (r *SettingRepository) Update(ctx context.Context, setting *models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.settings[setting.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	setting.UpdatedAt = time.Now()
	r.settings[setting.ID] = clone(setting)
	return nil
}

// FindByID finds a setting by ID
func (r *SettingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.settings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return clone(s), nil
}

// FindActiveByKey finds all active settings sharing a normalized key
func (r *SettingRepository) FindActiveByKey(ctx context.Context, key string) ([]*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*models.Setting{}
	for _, s := range r.settings {
		if s.Key == key && s.IsActive {
			result = append(result, clone(s))
		}
	}
	return result, nil
}

// FindByKeyAndScope finds the setting at an exact (key, scope) tuple
func (r *SettingRepository) FindByKeyAndScope(ctx context.Context, key string, scope models.SettingScope) (*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.settings {
		if s.Key == key && s.Scope().Equals(scope) {
			return clone(s), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindAll finds all settings with pagination, sorted by key
func (r *SettingRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*models.Setting, 0, len(r.settings))
	for _, s := range r.settings {
		all = append(all, clone(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return paginateSlice(all, page, limit), nil
}

// FindByCategory finds settings belonging to a category
func (r *SettingRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID, page, limit int) ([]*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Setting{}
	for _, s := range r.settings {
		if s.CategoryID != nil && *s.CategoryID == categoryID {
			matched = append(matched, clone(s))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Key < matched[j].Key })
	return paginateSlice(matched, page, limit), nil
}

// Deactivate soft-deletes a setting
func (r *SettingRepository) Deactivate(ctx context.Context, id primitive.ObjectID, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.IsActive = false
	s.UpdatedBy = updatedBy
	s.UpdatedAt = time.Now()
	return nil
}

// Count counts all settings
func (r *SettingRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.settings)), nil
}

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

// SettingCategoryRepository is a map-backed repositories.SettingCategoryRepository
type SettingCategoryRepository struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]*models.SettingCategory
}

// NewSettingCategoryRepository creates an empty in-memory SettingCategoryRepository
func NewSettingCategoryRepository() repositories.SettingCategoryRepository {
	return &SettingCategoryRepository{
		categories: make(map[primitive.ObjectID]*models.SettingCategory),
	}
}

func cloneCategory(c *models.SettingCategory) *models.SettingCategory {
	cp := *c
	return &cp
}

// Create inserts a new category, assigning an id
func (r *SettingCategoryRepository) Create(ctx context.Context, category *models.SettingCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	r.categories[category.ID] = cloneCategory(category)
	return nil
}

// FindByID finds a category by ID
func (r *SettingCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SettingCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneCategory(c), nil
}

// FindByName finds a category by name
func (r *SettingCategoryRepository) FindByName(ctx context.Context, name string) (*models.SettingCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Name == name {
			return cloneCategory(c), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindAll finds all categories sorted by name
func (r *SettingCategoryRepository) FindAll(ctx context.Context) ([]*models.SettingCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*models.SettingCategory, 0, len(r.categories))
	for _, c := range r.categories {
		all = append(all, cloneCategory(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

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

// OutletRepository is a map-backed repositories.OutletRepository
type OutletRepository struct {
	mu      sync.RWMutex
	outlets map[primitive.ObjectID]*models.Outlet
}

// NewOutletRepository creates an empty in-memory OutletRepository
func NewOutletRepository() repositories.OutletRepository {
	return &OutletRepository{outlets: make(map[primitive.ObjectID]*models.Outlet)}
}

func cloneOutlet(o *models.Outlet) *models.Outlet {
	c := *o
	return &c
}

// Create inserts a new outlet, assigning an id
func (r *OutletRepository) Create(ctx context.Context, outlet *models.Outlet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if outlet.ID.IsZero() {
		outlet.ID = primitive.NewObjectID()
	}
	outlet.CreatedAt = time.Now()
	outlet.UpdatedAt = time.Now()
	r.outlets[outlet.ID] = cloneOutlet(outlet)
	return nil
}

// FindByID finds an outlet by ID
func (r *OutletRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outlet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.outlets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneOutlet(o), nil
}

// FindByCode finds an outlet by its short code
func (r *OutletRepository) FindByCode(ctx context.Context, code string) (*models.Outlet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.outlets {
		if o.Code == code {
			return cloneOutlet(o), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindAll finds all outlets with pagination, sorted by code
func (r *OutletRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Outlet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*models.Outlet, 0, len(r.outlets))
	for _, o := range r.outlets {
		all = append(all, cloneOutlet(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paginateSlice(all, page, limit), nil
}

// Update replaces an existing outlet
func (r *OutletRepository) Update(ctx context.Context, outlet *models.Outlet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.outlets[outlet.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	outlet.UpdatedAt = time.Now()
	r.outlets[outlet.ID] = cloneOutlet(outlet)
	return nil
}

// Deactivate soft-deletes an outlet
func (r *OutletRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outlets[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	o.IsActive = false
	o.UpdatedAt = time.Now()
	return nil
}

// Count counts all outlets
func (r *OutletRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.outlets)), nil
}

// paginateSlice applies page/limit windowing to an already sorted slice
func paginateSlice[T any](all []T, page, limit int) []T {
	if page <= 0 || limit <= 0 {
		return all
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return []T{}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

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

// CylinderRepository is a map-backed repositories.CylinderRepository
type CylinderRepository struct {
	mu        sync.RWMutex
	cylinders map[primitive.ObjectID]*models.Cylinder
}

// NewCylinderRepository creates an empty in-memory CylinderRepository
func NewCylinderRepository() repositories.CylinderRepository {
	return &CylinderRepository{cylinders: make(map[primitive.ObjectID]*models.Cylinder)}
}

func cloneCylinder(c *models.Cylinder) *models.Cylinder {
	cp := *c
	return &cp
}

// Create inserts a new cylinder, assigning an id
func (r *CylinderRepository) Create(ctx context.Context, cylinder *models.Cylinder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cylinder.ID.IsZero() {
		cylinder.ID = primitive.NewObjectID()
	}
	cylinder.CreatedAt = time.Now()
	cylinder.UpdatedAt = time.Now()
	r.cylinders[cylinder.ID] = cloneCylinder(cylinder)
	return nil
}

// FindByID finds a cylinder by ID
func (r *CylinderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cylinder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cylinders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneCylinder(c), nil
}

// FindBySerialNumber finds a cylinder by its serial number
func (r *CylinderRepository) FindBySerialNumber(ctx context.Context, serial string) (*models.Cylinder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.cylinders {
		if c.SerialNumber == serial {
			return cloneCylinder(c), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindByOutlet finds cylinders currently held by an outlet
func (r *CylinderRepository) FindByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Cylinder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Cylinder{}
	for _, c := range r.cylinders {
		if c.OutletID != nil && *c.OutletID == outletID {
			matched = append(matched, cloneCylinder(c))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SerialNumber < matched[j].SerialNumber })
	return paginateSlice(matched, page, limit), nil
}

// FindByStatus finds cylinders in a lifecycle state
func (r *CylinderRepository) FindByStatus(ctx context.Context, status models.CylinderStatus, page, limit int) ([]*models.Cylinder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Cylinder{}
	for _, c := range r.cylinders {
		if c.Status == status {
			matched = append(matched, cloneCylinder(c))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SerialNumber < matched[j].SerialNumber })
	return paginateSlice(matched, page, limit), nil
}

// Update replaces an existing cylinder
func (r *CylinderRepository) Update(ctx context.Context, cylinder *models.Cylinder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cylinders[cylinder.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cylinder.UpdatedAt = time.Now()
	r.cylinders[cylinder.ID] = cloneCylinder(cylinder)
	return nil
}

// Count counts all cylinders
func (r *CylinderRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.cylinders)), nil
}

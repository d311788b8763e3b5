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

// LeaseRepository is a map-backed repositories.LeaseRepository
type LeaseRepository struct {
	mu     sync.RWMutex
	leases map[primitive.ObjectID]*models.Lease
}

// NewLeaseRepository creates an empty in-memory LeaseRepository
func NewLeaseRepository() repositories.LeaseRepository {
	return &LeaseRepository{leases: make(map[primitive.ObjectID]*models.Lease)}
}

func cloneLease(l *models.Lease) *models.Lease {
	cp := *l
	return &cp
}

// Create inserts a new lease, assigning an id
func (r *LeaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lease.ID.IsZero() {
		lease.ID = primitive.NewObjectID()
	}
	lease.CreatedAt = time.Now()
	lease.UpdatedAt = time.Now()
	r.leases[lease.ID] = cloneLease(lease)
	return nil
}

// FindByID finds a lease by ID
func (r *LeaseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.leases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneLease(l), nil
}

// FindByCustomer finds a customer's leases, newest first
func (r *LeaseRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Lease{}
	for _, l := range r.leases {
		if l.CustomerID == customerID {
			matched = append(matched, cloneLease(l))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginateSlice(matched, page, limit), nil
}

// FindByOutlet finds leases opened at an outlet, newest first
func (r *LeaseRepository) FindByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Lease{}
	for _, l := range r.leases {
		if l.OutletID == outletID {
			matched = append(matched, cloneLease(l))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginateSlice(matched, page, limit), nil
}

// FindByStatus finds leases in a lifecycle state, newest first
func (r *LeaseRepository) FindByStatus(ctx context.Context, status models.LeaseStatus, page, limit int) ([]*models.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Lease{}
	for _, l := range r.leases {
		if l.Status == status {
			matched = append(matched, cloneLease(l))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginateSlice(matched, page, limit), nil
}

// FindActiveByCylinder finds the active lease holding a cylinder, if any
func (r *LeaseRepository) FindActiveByCylinder(ctx context.Context, cylinderID primitive.ObjectID) (*models.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.leases {
		if l.CylinderID == cylinderID && l.Status == models.LeaseActive {
			return cloneLease(l), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// Update replaces an existing lease
func (r *LeaseRepository) Update(ctx context.Context, lease *models.Lease) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leases[lease.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	lease.UpdatedAt = time.Now()
	r.leases[lease.ID] = cloneLease(lease)
	return nil
}

// Count counts all leases
func (r *LeaseRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.leases)), nil
}

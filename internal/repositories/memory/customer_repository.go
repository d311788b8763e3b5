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

// CustomerRepository is a map-backed repositories.CustomerRepository
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[primitive.ObjectID]*models.Customer
}

// NewCustomerRepository creates an empty in-memory CustomerRepository
func NewCustomerRepository() repositories.CustomerRepository {
	return &CustomerRepository{customers: make(map[primitive.ObjectID]*models.Customer)}
}

func cloneCustomer(c *models.Customer) *models.Customer {
	cp := *c
	return &cp
}

// Create inserts a new customer, assigning an id
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

// FindByID finds a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneCustomer(c), nil
}

// FindByPhone finds a customer by phone number
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.Phone == phone {
			return cloneCustomer(c), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindAll finds all customers with pagination, sorted by name
func (r *CustomerRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		all = append(all, cloneCustomer(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginateSlice(all, page, limit), nil
}

// Update replaces an existing customer
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

// Deactivate soft-deletes a customer
func (r *CustomerRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.IsActive = false
	c.UpdatedAt = time.Now()
	return nil
}

// Count counts all customers
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}

package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// AdminUserRepository is a map-backed repositories.AdminUserRepository
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.AdminUser
}

// NewAdminUserRepository creates an empty in-memory AdminUserRepository
func NewAdminUserRepository() repositories.AdminUserRepository {
	return &AdminUserRepository{users: make(map[primitive.ObjectID]*models.AdminUser)}
}

func cloneAdminUser(u *models.AdminUser) *models.AdminUser {
	c := *u
	return &c
}

// Create inserts a new admin user, assigning an id
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneAdminUser(user)
	return nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneAdminUser(u), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindByID finds an admin user by ID
func (r *AdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneAdminUser(u), nil
}

// Update replaces an existing admin user
func (r *AdminUserRepository) Update(ctx context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneAdminUser(user)
	return nil
}

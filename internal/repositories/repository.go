package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
)

// SettingRepository defines the interface for setting data operations.
// FindActiveByKey returns every active setting sharing the normalized key,
// regardless of scope; scope matching and ranking happen in the service layer
// so the resolution rules live in one place.
type SettingRepository interface {
	Create(ctx context.Context, setting *models.Setting) error
	Update(ctx context.Context, setting *models.Setting) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Setting, error)
	FindActiveByKey(ctx context.Context, key string) ([]*models.Setting, error)
	FindByKeyAndScope(ctx context.Context, key string, scope models.SettingScope) (*models.Setting, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Setting, error)
	FindByCategory(ctx context.Context, categoryID primitive.ObjectID, page, limit int) ([]*models.Setting, error)
	Deactivate(ctx context.Context, id primitive.ObjectID, updatedBy string) error
	Count(ctx context.Context) (int64, error)
}

// SettingCategoryRepository defines the interface for setting category lookups
type SettingCategoryRepository interface {
	Create(ctx context.Context, category *models.SettingCategory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SettingCategory, error)
	FindByName(ctx context.Context, name string) (*models.SettingCategory, error)
	FindAll(ctx context.Context) ([]*models.SettingCategory, error)
}

// OutletRepository defines the interface for outlet data operations
type OutletRepository interface {
	Create(ctx context.Context, outlet *models.Outlet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outlet, error)
	FindByCode(ctx context.Context, code string) (*models.Outlet, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Outlet, error)
	Update(ctx context.Context, outlet *models.Outlet) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CylinderRepository defines the interface for cylinder data operations
type CylinderRepository interface {
	Create(ctx context.Context, cylinder *models.Cylinder) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cylinder, error)
	FindBySerialNumber(ctx context.Context, serial string) (*models.Cylinder, error)
	FindByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Cylinder, error)
	FindByStatus(ctx context.Context, status models.CylinderStatus, page, limit int) ([]*models.Cylinder, error)
	Update(ctx context.Context, cylinder *models.Cylinder) error
	Count(ctx context.Context) (int64, error)
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// LeaseRepository defines the interface for lease data operations
type LeaseRepository interface {
	Create(ctx context.Context, lease *models.Lease) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error)
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Lease, error)
	FindByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Lease, error)
	FindByStatus(ctx context.Context, status models.LeaseStatus, page, limit int) ([]*models.Lease, error)
	FindActiveByCylinder(ctx context.Context, cylinderID primitive.ObjectID) (*models.Lease, error)
	Update(ctx context.Context, lease *models.Lease) error
	Count(ctx context.Context) (int64, error)
}

// OperationRepository defines the interface for operation record data operations
type OperationRepository interface {
	Create(ctx context.Context, op *models.Operation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Operation, error)
	FindByCylinder(ctx context.Context, cylinderID primitive.ObjectID, page, limit int) ([]*models.Operation, error)
	FindByType(ctx context.Context, opType models.OperationType, page, limit int) ([]*models.Operation, error)
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	Update(ctx context.Context, user *models.AdminUser) error
}

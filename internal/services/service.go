package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
)

// SetSettingRequest carries an administrative create-or-update of a setting.
// The (key, scope) tuple identifies the record: a write to an existing tuple
// supersedes it in place.
type SetSettingRequest struct {
	Key        string                 `json:"key" binding:"required"`
	Value      interface{}            `json:"value" binding:"required"`
	DataType   models.SettingDataType `json:"dataType" binding:"required"`
	CategoryID *primitive.ObjectID    `json:"categoryId,omitempty"`
	Scope      models.SettingScope    `json:"scope"`
	Reason     string                 `json:"reason,omitempty"`
}

// SettingsService defines the interface for setting storage and scoped resolution
type SettingsService interface {
	// Resolve returns the single most specific active setting for a key and
	// scope, with its value decoded per the declared data type.
	Resolve(ctx context.Context, key string, scope models.SettingScope) (*models.Setting, interface{}, error)

	// ResolveNumber resolves a key and coerces the winner to a float64
	ResolveNumber(ctx context.Context, key string, scope models.SettingScope) (float64, error)

	// ResolveString resolves a key and coerces the winner to a string
	ResolveString(ctx context.Context, key string, scope models.SettingScope) (string, error)

	// ResolveBool resolves a key and coerces the winner to a bool
	ResolveBool(ctx context.Context, key string, scope models.SettingScope) (bool, error)

	// SetSetting creates or updates the setting at (key, scope)
	SetSetting(ctx context.Context, req SetSettingRequest, actingUserID string) (*models.Setting, error)

	// DeleteSetting soft-deactivates a setting, preserving audit history
	DeleteSetting(ctx context.Context, id primitive.ObjectID, actingUserID string) error

	GetSettingByID(ctx context.Context, id primitive.ObjectID) (*models.Setting, error)
	ListSettings(ctx context.Context, page, limit int) ([]*models.Setting, error)
	ListSettingsByCategory(ctx context.Context, categoryID primitive.ObjectID, page, limit int) ([]*models.Setting, error)

	CreateCategory(ctx context.Context, category *models.SettingCategory) error
	ListCategories(ctx context.Context) ([]*models.SettingCategory, error)
}

// PricingService defines the interface for price calculation and quoting
type PricingService interface {
	// CalculatePrice computes the full breakdown for one operation instance
	CalculatePrice(ctx context.Context, req models.PriceRequest) (*models.PricingResult, error)

	// CalculateBulkPrice prices a batch atomically: every item is validated
	// before any is computed, and the first invalid item fails the batch.
	CalculateBulkPrice(ctx context.Context, req models.BulkPriceRequest) (*models.BulkPricingResult, error)

	// GetQuote is CalculatePrice with no side effects plus a reference id
	GetQuote(ctx context.Context, req models.PriceRequest) (*models.Quote, error)

	// CalculateRevenueProjection multiplies one unit's total by an estimated
	// volume. A linear projection, not a forecast.
	CalculateRevenueProjection(ctx context.Context, opType models.OperationType, scope models.SettingScope, estimatedVolume int) (*models.ProjectionResult, error)
}

// OutletService defines the interface for outlet management
type OutletService interface {
	CreateOutlet(ctx context.Context, outlet *models.Outlet) error
	GetOutletByID(ctx context.Context, id primitive.ObjectID) (*models.Outlet, error)
	GetAllOutlets(ctx context.Context, page, limit int) ([]*models.Outlet, error)
	UpdateOutlet(ctx context.Context, outlet *models.Outlet) error
	DeactivateOutlet(ctx context.Context, id primitive.ObjectID) error
}

// CylinderService defines the interface for cylinder management and movement
type CylinderService interface {
	CreateCylinder(ctx context.Context, cylinder *models.Cylinder) error
	GetCylinderByID(ctx context.Context, id primitive.ObjectID) (*models.Cylinder, error)
	GetCylindersByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Cylinder, error)
	GetCylindersByStatus(ctx context.Context, status models.CylinderStatus, page, limit int) ([]*models.Cylinder, error)
	UpdateCylinder(ctx context.Context, cylinder *models.Cylinder) error

	// Transfer moves a cylinder between outlets and records a TRANSFER operation
	Transfer(ctx context.Context, cylinderID, toOutletID primitive.ObjectID, performedBy string) (*models.Operation, error)

	// Refill charges a refill via the pricing engine and records the operation
	Refill(ctx context.Context, cylinderID primitive.ObjectID, customerID *primitive.ObjectID, gasAmountKg float64, performedBy string) (*models.Operation, error)

	// Swap charges a condition-dependent swap fee and records the operation
	Swap(ctx context.Context, cylinderID primitive.ObjectID, customerID *primitive.ObjectID, condition models.CylinderCondition, performedBy string) (*models.Operation, error)

	GetOperationsByCylinder(ctx context.Context, cylinderID primitive.ObjectID, page, limit int) ([]*models.Operation, error)
	GetOperationsByType(ctx context.Context, opType models.OperationType, page, limit int) ([]*models.Operation, error)
}

// CustomerService defines the interface for customer management
type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	GetAllCustomers(ctx context.Context, page, limit int) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeactivateCustomer(ctx context.Context, id primitive.ObjectID) error
}

// CreateLeaseRequest carries the inputs for opening a lease
type CreateLeaseRequest struct {
	CustomerID primitive.ObjectID `json:"customerId" binding:"required"`
	CylinderID primitive.ObjectID `json:"cylinderId" binding:"required"`
	Duration   int                `json:"duration"`
}

// LeaseService defines the interface for the lease lifecycle
type LeaseService interface {
	// CreateLease prices the lease and deposit charges, stores their
	// breakdowns on the lease, and marks the cylinder LEASED.
	CreateLease(ctx context.Context, req CreateLeaseRequest, performedBy string) (*models.Lease, error)

	// ReturnLease closes a lease; a poor or damaged cylinder incurs a
	// penalty charge priced with the return condition fee.
	ReturnLease(ctx context.Context, leaseID primitive.ObjectID, condition models.CylinderCondition, performedBy string) (*models.Lease, error)

	GetLeaseByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error)
	GetLeasesByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Lease, error)
	GetLeasesByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Lease, error)
	GetLeasesByStatus(ctx context.Context, status models.LeaseStatus, page, limit int) ([]*models.Lease, error)
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
	"github.com/gasops/cylinder-backend/internal/repositories/memory"
)

type leaseFixture struct {
	settings     *SettingsServiceImpl
	leases       *LeaseServiceImpl
	cylinderRepo repositories.CylinderRepository
	customerRepo repositories.CustomerRepository
	outlet       *models.Outlet
	cylinder     *models.Cylinder
	customer     *models.Customer
}

func newLeaseFixture(t *testing.T) *leaseFixture {
	t.Helper()
	ctx := context.Background()

	settings := newSettingsFixture()
	pricing := NewPricingService(settings)
	outletRepo := memory.NewOutletRepository()
	cylinderRepo := memory.NewCylinderRepository()
	customerRepo := memory.NewCustomerRepository()
	leaseRepo := memory.NewLeaseRepository()

	outlet := &models.Outlet{Name: "Main Depot", Code: "DEP-01", IsActive: true}
	require.NoError(t, outletRepo.Create(ctx, outlet))

	cylinder := &models.Cylinder{
		SerialNumber: "CYL-0001",
		CylinderType: "12kg",
		SizeKg:       12,
		Status:       models.CylinderAvailable,
		OutletID:     &outlet.ID,
	}
	require.NoError(t, cylinderRepo.Create(ctx, cylinder))

	customer := &models.Customer{Name: "Ada", Phone: "08010000001", IsActive: true}
	require.NoError(t, customerRepo.Create(ctx, customer))

	mustSet(t, settings, "lease.base_price", 50, models.DataTypeNumber, models.SettingScope{})
	mustSet(t, settings, "deposit.base_price", 500, models.DataTypeNumber, models.SettingScope{})
	mustSet(t, settings, "penalty.base_price", 100, models.DataTypeNumber, models.SettingScope{})

	return &leaseFixture{
		settings:     settings,
		leases:       NewLeaseService(leaseRepo, cylinderRepo, customerRepo, pricing),
		cylinderRepo: cylinderRepo,
		customerRepo: customerRepo,
		outlet:       outlet,
		cylinder:     cylinder,
		customer:     customer,
	}
}

func TestCreateLease(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	lease, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
		Duration:   3,
	}, "staff-1")
	require.NoError(t, err)

	assert.Equal(t, models.LeaseActive, lease.Status)
	assert.NotEmpty(t, lease.Reference)
	assert.Equal(t, 3, lease.Duration)
	assert.InDelta(t, 150, lease.LeaseCharge.TotalPrice, 1e-9)
	assert.InDelta(t, 500, lease.DepositCharge.TotalPrice, 1e-9)

	cylinder, err := fx.cylinderRepo.FindByID(ctx, fx.cylinder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CylinderLeased, cylinder.Status)

	// The leased cylinder cannot be leased again
	_, err = fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestCreateLeaseDetectsDoubleBooking(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	_, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	require.NoError(t, err)

	// Even with a drifted status field, the active lease blocks a second one
	cylinder, err := fx.cylinderRepo.FindByID(ctx, fx.cylinder.ID)
	require.NoError(t, err)
	cylinder.Status = models.CylinderAvailable
	require.NoError(t, fx.cylinderRepo.Update(ctx, cylinder))

	_, err = fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateLeaseRejectsInactiveCustomer(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.customerRepo.Deactivate(ctx, fx.customer.ID))

	_, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestCreateLeaseUnknownRecords(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()
	var notFound *models.NotFoundError

	_, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: primitive.NewObjectID(),
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	require.ErrorAs(t, err, &notFound)

	_, err = fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: primitive.NewObjectID(),
	}, "staff-1")
	require.ErrorAs(t, err, &notFound)
}

func TestCreateLeaseRequiresDepositConfiguration(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	// Knock out the deposit price; lease creation must refuse to guess
	all, err := fx.settings.ListSettings(ctx, 1, 50)
	require.NoError(t, err)
	for _, s := range all {
		if s.Key == "deposit.base_price" {
			require.NoError(t, fx.settings.DeleteSetting(ctx, s.ID, "test-admin"))
		}
	}

	_, err = fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	var cfgErr *models.PricingConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "deposit.base_price", cfgErr.Key)
}

func TestReturnLeaseGoodCondition(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	lease, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	require.NoError(t, err)

	returned, err := fx.leases.ReturnLease(ctx, lease.ID, models.ConditionGood, "staff-2")
	require.NoError(t, err)
	assert.Equal(t, models.LeaseReturned, returned.Status)
	assert.Equal(t, models.ConditionGood, returned.ReturnCondition)
	assert.Nil(t, returned.ReturnPenalty)
	require.NotNil(t, returned.ReturnedAt)

	cylinder, err := fx.cylinderRepo.FindByID(ctx, fx.cylinder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CylinderAvailable, cylinder.Status)

	// Closing twice is rejected
	_, err = fx.leases.ReturnLease(ctx, lease.ID, models.ConditionGood, "staff-2")
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestReturnLeaseDamagedChargesPenalty(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	lease, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	require.NoError(t, err)

	returned, err := fx.leases.ReturnLease(ctx, lease.ID, models.ConditionDamaged, "staff-2")
	require.NoError(t, err)

	// Damaged return: penalty base 100 plus the default 25% condition fee
	require.NotNil(t, returned.ReturnPenalty)
	assert.InDelta(t, 125, returned.ReturnPenalty.TotalPrice, 1e-9)

	cylinder, err := fx.cylinderRepo.FindByID(ctx, fx.cylinder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CylinderMaintenance, cylinder.Status)
}

func TestReturnLeaseInvalidCondition(t *testing.T) {
	fx := newLeaseFixture(t)

	_, err := fx.leases.ReturnLease(context.Background(), primitive.NewObjectID(), "rusty", "staff-2")
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestGetLeasesByCustomerAndStatus(t *testing.T) {
	fx := newLeaseFixture(t)
	ctx := context.Background()

	lease, err := fx.leases.CreateLease(ctx, CreateLeaseRequest{
		CustomerID: fx.customer.ID,
		CylinderID: fx.cylinder.ID,
	}, "staff-1")
	require.NoError(t, err)

	byCustomer, err := fx.leases.GetLeasesByCustomer(ctx, fx.customer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, lease.ID, byCustomer[0].ID)

	active, err := fx.leases.GetLeasesByStatus(ctx, models.LeaseActive, 1, 10)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	returned, err := fx.leases.GetLeasesByStatus(ctx, models.LeaseReturned, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, returned)
}

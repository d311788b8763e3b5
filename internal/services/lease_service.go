package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// Compile-time check to ensure LeaseServiceImpl implements LeaseService
var _ LeaseService = (*LeaseServiceImpl)(nil)

// LeaseServiceImpl implements LeaseService. Charges are computed through the
// pricing engine at transition time and stored on the lease so the numbers
// stay auditable after settings change.
type LeaseServiceImpl struct {
	leaseRepo    repositories.LeaseRepository
	cylinderRepo repositories.CylinderRepository
	customerRepo repositories.CustomerRepository
	pricing      PricingService
}

// NewLeaseService creates a new LeaseServiceImpl
func NewLeaseService(
	leaseRepo repositories.LeaseRepository,
	cylinderRepo repositories.CylinderRepository,
	customerRepo repositories.CustomerRepository,
	pricing PricingService,
) *LeaseServiceImpl {
	return &LeaseServiceImpl{
		leaseRepo:    leaseRepo,
		cylinderRepo: cylinderRepo,
		customerRepo: customerRepo,
		pricing:      pricing,
	}
}

// CreateLease opens a lease: prices the lease charge and the deposit, stores
// both breakdowns, and marks the cylinder LEASED.
func (s *LeaseServiceImpl) CreateLease(ctx context.Context, req CreateLeaseRequest, performedBy string) (*models.Lease, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("customer", req.CustomerID.Hex())
		}
		return nil, err
	}
	if !customer.IsActive {
		return nil, models.NewValidationError("customerId", "customer account is deactivated")
	}

	cylinder, err := s.cylinderRepo.FindByID(ctx, req.CylinderID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("cylinder", req.CylinderID.Hex())
		}
		return nil, err
	}
	if cylinder.Status != models.CylinderAvailable {
		return nil, models.NewValidationError("cylinderId", fmt.Sprintf("cylinder is %s, not AVAILABLE", cylinder.Status))
	}
	if cylinder.OutletID == nil {
		return nil, models.NewValidationError("cylinderId", "cylinder has no current outlet")
	}

	// The lease table is the source of truth for double-booking, not the
	// status field on the cylinder
	existing, err := s.leaseRepo.FindActiveByCylinder(ctx, cylinder.ID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check for active lease: %w", err)
	}
	if existing != nil {
		return nil, &models.ConflictError{Resource: "lease", Message: fmt.Sprintf("cylinder %s is already held by lease %s", cylinder.ID.Hex(), existing.Reference)}
	}

	duration := req.Duration
	if duration < 1 {
		duration = 1
	}

	leaseCharge, err := s.pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		CylinderType:  &cylinder.CylinderType,
		Quantity:      1,
		OutletID:      cylinder.OutletID,
		CustomerID:    &customer.ID,
		Duration:      duration,
	})
	if err != nil {
		return nil, err
	}
	depositCharge, err := s.pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationDeposit,
		CylinderType:  &cylinder.CylinderType,
		Quantity:      1,
		OutletID:      cylinder.OutletID,
		CustomerID:    &customer.ID,
	})
	if err != nil {
		return nil, err
	}

	lease := &models.Lease{
		Reference:     uuid.NewString(),
		CustomerID:    customer.ID,
		CylinderID:    cylinder.ID,
		OutletID:      *cylinder.OutletID,
		Status:        models.LeaseActive,
		Duration:      duration,
		LeaseCharge:   *leaseCharge,
		DepositCharge: *depositCharge,
		StartedAt:     time.Now(),
		CreatedBy:     performedBy,
	}
	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	cylinder.Status = models.CylinderLeased
	if err := s.cylinderRepo.Update(ctx, cylinder); err != nil {
		return nil, fmt.Errorf("failed to mark cylinder leased: %w", err)
	}

	slog.Info("Lease opened", "leaseId", lease.ID.Hex(), "reference", lease.Reference,
		"customerId", customer.ID.Hex(), "cylinderId", cylinder.ID.Hex(),
		"leaseTotal", leaseCharge.TotalPrice, "depositTotal", depositCharge.TotalPrice)
	return lease, nil
}

// ReturnLease closes a lease. A poor or damaged cylinder incurs a penalty
// priced with the return condition fee; a good return carries no charge.
func (s *LeaseServiceImpl) ReturnLease(ctx context.Context, leaseID primitive.ObjectID, condition models.CylinderCondition, performedBy string) (*models.Lease, error) {
	if !condition.IsValid() {
		return nil, models.NewValidationError("condition", fmt.Sprintf("unknown cylinder condition %q", condition))
	}

	lease, err := s.GetLeaseByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.Status == models.LeaseReturned {
		return nil, models.NewValidationError("leaseId", "lease is already returned")
	}

	cylinder, err := s.cylinderRepo.FindByID(ctx, lease.CylinderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leased cylinder: %w", err)
	}

	if condition != models.ConditionGood {
		penalty, err := s.pricing.CalculatePrice(ctx, models.PriceRequest{
			OperationType: models.OperationPenalty,
			CylinderType:  &cylinder.CylinderType,
			Quantity:      1,
			OutletID:      &lease.OutletID,
			CustomerID:    &lease.CustomerID,
			Condition:     condition,
		})
		if err != nil {
			return nil, err
		}
		lease.ReturnPenalty = penalty
	}

	now := time.Now()
	lease.Status = models.LeaseReturned
	lease.ReturnCondition = condition
	lease.ReturnedAt = &now
	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to close lease: %w", err)
	}

	if condition == models.ConditionDamaged {
		cylinder.Status = models.CylinderMaintenance
	} else {
		cylinder.Status = models.CylinderAvailable
	}
	if err := s.cylinderRepo.Update(ctx, cylinder); err != nil {
		return nil, fmt.Errorf("failed to release cylinder: %w", err)
	}

	slog.Info("Lease returned", "leaseId", lease.ID.Hex(), "condition", condition, "performedBy", performedBy)
	return lease, nil
}

// GetLeaseByID retrieves one lease
func (s *LeaseServiceImpl) GetLeaseByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error) {
	lease, err := s.leaseRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("lease", id.Hex())
		}
		return nil, err
	}
	return lease, nil
}

// GetLeasesByCustomer lists a customer's leases
func (s *LeaseServiceImpl) GetLeasesByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Lease, error) {
	return s.leaseRepo.FindByCustomer(ctx, customerID, page, limit)
}

// GetLeasesByOutlet lists leases opened at an outlet
func (s *LeaseServiceImpl) GetLeasesByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Lease, error) {
	return s.leaseRepo.FindByOutlet(ctx, outletID, page, limit)
}

// GetLeasesByStatus lists leases in a lifecycle state
func (s *LeaseServiceImpl) GetLeasesByStatus(ctx context.Context, status models.LeaseStatus, page, limit int) ([]*models.Lease, error) {
	return s.leaseRepo.FindByStatus(ctx, status, page, limit)
}

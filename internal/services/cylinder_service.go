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

// Compile-time check to ensure CylinderServiceImpl implements CylinderService
var _ CylinderService = (*CylinderServiceImpl)(nil)

// CylinderServiceImpl implements CylinderService. Refill and swap charge
// through the pricing engine and persist the breakdown on the operation
// record; transfer is unpriced.
type CylinderServiceImpl struct {
	cylinderRepo  repositories.CylinderRepository
	outletRepo    repositories.OutletRepository
	operationRepo repositories.OperationRepository
	pricing       PricingService
}

// NewCylinderService creates a new CylinderServiceImpl
func NewCylinderService(
	cylinderRepo repositories.CylinderRepository,
	outletRepo repositories.OutletRepository,
	operationRepo repositories.OperationRepository,
	pricing PricingService,
) *CylinderServiceImpl {
	return &CylinderServiceImpl{
		cylinderRepo:  cylinderRepo,
		outletRepo:    outletRepo,
		operationRepo: operationRepo,
		pricing:       pricing,
	}
}

// CreateCylinder registers a cylinder; the serial number must be unique
func (s *CylinderServiceImpl) CreateCylinder(ctx context.Context, cylinder *models.Cylinder) error {
	if cylinder.SerialNumber == "" {
		return models.NewValidationError("serialNumber", "serialNumber must not be empty")
	}
	if cylinder.CylinderType == "" {
		return models.NewValidationError("cylinderType", "cylinderType must not be empty")
	}
	existing, err := s.cylinderRepo.FindBySerialNumber(ctx, cylinder.SerialNumber)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check serial number: %w", err)
	}
	if existing != nil {
		return &models.ConflictError{Resource: "cylinder", Message: fmt.Sprintf("serial number %q is already registered", cylinder.SerialNumber)}
	}
	if cylinder.Status == "" {
		cylinder.Status = models.CylinderAvailable
	}
	return s.cylinderRepo.Create(ctx, cylinder)
}

// GetCylinderByID retrieves one cylinder
func (s *CylinderServiceImpl) GetCylinderByID(ctx context.Context, id primitive.ObjectID) (*models.Cylinder, error) {
	cylinder, err := s.cylinderRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("cylinder", id.Hex())
		}
		return nil, err
	}
	return cylinder, nil
}

// GetCylindersByOutlet lists cylinders located at an outlet
func (s *CylinderServiceImpl) GetCylindersByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Cylinder, error) {
	return s.cylinderRepo.FindByOutlet(ctx, outletID, page, limit)
}

// GetCylindersByStatus lists cylinders in a lifecycle state
func (s *CylinderServiceImpl) GetCylindersByStatus(ctx context.Context, status models.CylinderStatus, page, limit int) ([]*models.Cylinder, error) {
	return s.cylinderRepo.FindByStatus(ctx, status, page, limit)
}

// UpdateCylinder replaces a cylinder record
func (s *CylinderServiceImpl) UpdateCylinder(ctx context.Context, cylinder *models.Cylinder) error {
	if _, err := s.GetCylinderByID(ctx, cylinder.ID); err != nil {
		return err
	}
	return s.cylinderRepo.Update(ctx, cylinder)
}

// Transfer moves a cylinder to another outlet and records a TRANSFER operation
func (s *CylinderServiceImpl) Transfer(ctx context.Context, cylinderID, toOutletID primitive.ObjectID, performedBy string) (*models.Operation, error) {
	cylinder, err := s.GetCylinderByID(ctx, cylinderID)
	if err != nil {
		return nil, err
	}
	if cylinder.Status == models.CylinderLeased {
		return nil, models.NewValidationError("cylinderId", "a leased cylinder cannot be transferred")
	}
	if cylinder.OutletID == nil {
		return nil, models.NewValidationError("cylinderId", "cylinder has no current outlet")
	}
	if _, err := s.outletRepo.FindByID(ctx, toOutletID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("outlet", toOutletID.Hex())
		}
		return nil, err
	}
	if *cylinder.OutletID == toOutletID {
		return nil, models.NewValidationError("toOutletId", "cylinder is already at the destination outlet")
	}

	fromOutlet := *cylinder.OutletID
	op := &models.Operation{
		Reference:   uuid.NewString(),
		Type:        models.OperationTransfer,
		CylinderID:  cylinderID,
		OutletID:    fromOutlet,
		ToOutletID:  &toOutletID,
		PerformedBy: performedBy,
		PerformedAt: time.Now(),
	}

	cylinder.OutletID = &toOutletID
	if err := s.cylinderRepo.Update(ctx, cylinder); err != nil {
		return nil, fmt.Errorf("failed to move cylinder: %w", err)
	}
	if err := s.operationRepo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}
	slog.Info("Cylinder transferred", "cylinderId", cylinderID.Hex(), "from", fromOutlet.Hex(), "to", toOutletID.Hex(), "reference", op.Reference)
	return op, nil
}

// Refill charges a refill through the pricing engine and records the operation
func (s *CylinderServiceImpl) Refill(ctx context.Context, cylinderID primitive.ObjectID, customerID *primitive.ObjectID, gasAmountKg float64, performedBy string) (*models.Operation, error) {
	cylinder, err := s.GetCylinderByID(ctx, cylinderID)
	if err != nil {
		return nil, err
	}

	charge, err := s.pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationRefill,
		CylinderType:  &cylinder.CylinderType,
		Quantity:      1,
		OutletID:      cylinder.OutletID,
		CustomerID:    customerID,
		GasAmount:     gasAmountKg,
	})
	if err != nil {
		return nil, err
	}

	op := &models.Operation{
		Reference:   uuid.NewString(),
		Type:        models.OperationRefill,
		CylinderID:  cylinderID,
		OutletID:    outletOrZero(cylinder.OutletID),
		CustomerID:  customerID,
		GasAmountKg: gasAmountKg,
		Charge:      charge,
		PerformedBy: performedBy,
		PerformedAt: time.Now(),
	}
	if err := s.operationRepo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to record refill: %w", err)
	}
	slog.Info("Refill recorded", "cylinderId", cylinderID.Hex(), "gasKg", gasAmountKg, "total", charge.TotalPrice, "reference", op.Reference)
	return op, nil
}

// Swap charges a condition-dependent swap fee and records the operation
func (s *CylinderServiceImpl) Swap(ctx context.Context, cylinderID primitive.ObjectID, customerID *primitive.ObjectID, condition models.CylinderCondition, performedBy string) (*models.Operation, error) {
	if !condition.IsValid() {
		return nil, models.NewValidationError("condition", fmt.Sprintf("unknown cylinder condition %q", condition))
	}
	cylinder, err := s.GetCylinderByID(ctx, cylinderID)
	if err != nil {
		return nil, err
	}

	charge, err := s.pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationSwap,
		CylinderType:  &cylinder.CylinderType,
		Quantity:      1,
		OutletID:      cylinder.OutletID,
		CustomerID:    customerID,
		Condition:     condition,
	})
	if err != nil {
		return nil, err
	}

	op := &models.Operation{
		Reference:   uuid.NewString(),
		Type:        models.OperationSwap,
		CylinderID:  cylinderID,
		OutletID:    outletOrZero(cylinder.OutletID),
		CustomerID:  customerID,
		Condition:   condition,
		Charge:      charge,
		PerformedBy: performedBy,
		PerformedAt: time.Now(),
	}
	if err := s.operationRepo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to record swap: %w", err)
	}
	slog.Info("Swap recorded", "cylinderId", cylinderID.Hex(), "condition", condition, "total", charge.TotalPrice, "reference", op.Reference)
	return op, nil
}

// GetOperationsByCylinder lists the operation history of a cylinder
func (s *CylinderServiceImpl) GetOperationsByCylinder(ctx context.Context, cylinderID primitive.ObjectID, page, limit int) ([]*models.Operation, error) {
	return s.operationRepo.FindByCylinder(ctx, cylinderID, page, limit)
}

// GetOperationsByType lists operations of one kind across all cylinders
func (s *CylinderServiceImpl) GetOperationsByType(ctx context.Context, opType models.OperationType, page, limit int) ([]*models.Operation, error) {
	return s.operationRepo.FindByType(ctx, opType, page, limit)
}

func outletOrZero(id *primitive.ObjectID) primitive.ObjectID {
	if id == nil {
		return primitive.NilObjectID
	}
	return *id
}

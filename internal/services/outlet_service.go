package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// Compile-time check to ensure OutletServiceImpl implements OutletService
var _ OutletService = (*OutletServiceImpl)(nil)

// OutletServiceImpl implements OutletService
type OutletServiceImpl struct {
	outletRepo repositories.OutletRepository
}

// NewOutletService creates a new OutletServiceImpl
func NewOutletService(outletRepo repositories.OutletRepository) *OutletServiceImpl {
	return &OutletServiceImpl{outletRepo: outletRepo}
}

// CreateOutlet creates an outlet; the short code must be unique
func (s *OutletServiceImpl) CreateOutlet(ctx context.Context, outlet *models.Outlet) error {
	if outlet.Name == "" {
		return models.NewValidationError("name", "name must not be empty")
	}
	if outlet.Code == "" {
		return models.NewValidationError("code", "code must not be empty")
	}
	existing, err := s.outletRepo.FindByCode(ctx, outlet.Code)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check outlet code: %w", err)
	}
	if existing != nil {
		return &models.ConflictError{Resource: "outlet", Message: fmt.Sprintf("code %q is already in use", outlet.Code)}
	}
	outlet.IsActive = true
	return s.outletRepo.Create(ctx, outlet)
}

// GetOutletByID retrieves one outlet
func (s *OutletServiceImpl) GetOutletByID(ctx context.Context, id primitive.ObjectID) (*models.Outlet, error) {
	outlet, err := s.outletRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("outlet", id.Hex())
		}
		return nil, err
	}
	return outlet, nil
}

// GetAllOutlets lists outlets with pagination
func (s *OutletServiceImpl) GetAllOutlets(ctx context.Context, page, limit int) ([]*models.Outlet, error) {
	return s.outletRepo.FindAll(ctx, page, limit)
}

// UpdateOutlet replaces an outlet record
func (s *OutletServiceImpl) UpdateOutlet(ctx context.Context, outlet *models.Outlet) error {
	if _, err := s.GetOutletByID(ctx, outlet.ID); err != nil {
		return err
	}
	return s.outletRepo.Update(ctx, outlet)
}

// DeactivateOutlet soft-deletes an outlet
func (s *OutletServiceImpl) DeactivateOutlet(ctx context.Context, id primitive.ObjectID) error {
	err := s.outletRepo.Deactivate(ctx, id)
	if err == mongo.ErrNoDocuments {
		return models.NewNotFoundError("outlet", id.Hex())
	}
	return err
}

package services

import (
	"context"
	"fmt"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// StatsService defines the interface for system overview counts
type StatsService interface {
	Overview(ctx context.Context) (*models.SystemStats, error)
}

// Compile-time check to ensure StatsServiceImpl implements StatsService
var _ StatsService = (*StatsServiceImpl)(nil)

// StatsServiceImpl implements StatsService over the record repositories
type StatsServiceImpl struct {
	settingRepo   repositories.SettingRepository
	outletRepo    repositories.OutletRepository
	cylinderRepo  repositories.CylinderRepository
	customerRepo  repositories.CustomerRepository
	leaseRepo     repositories.LeaseRepository
	operationRepo repositories.OperationRepository
}

// NewStatsService creates a new StatsServiceImpl
func NewStatsService(
	settingRepo repositories.SettingRepository,
	outletRepo repositories.OutletRepository,
	cylinderRepo repositories.CylinderRepository,
	customerRepo repositories.CustomerRepository,
	leaseRepo repositories.LeaseRepository,
	operationRepo repositories.OperationRepository,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		settingRepo:   settingRepo,
		outletRepo:    outletRepo,
		cylinderRepo:  cylinderRepo,
		customerRepo:  customerRepo,
		leaseRepo:     leaseRepo,
		operationRepo: operationRepo,
	}
}

// Overview counts every record collection
func (s *StatsServiceImpl) Overview(ctx context.Context) (*models.SystemStats, error) {
	stats := &models.SystemStats{}
	var err error
	if stats.Settings, err = s.settingRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count settings: %w", err)
	}
	if stats.Outlets, err = s.outletRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count outlets: %w", err)
	}
	if stats.Cylinders, err = s.cylinderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count cylinders: %w", err)
	}
	if stats.Customers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if stats.Leases, err = s.leaseRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count leases: %w", err)
	}
	if stats.Operations, err = s.operationRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count operations: %w", err)
	}
	return stats, nil
}

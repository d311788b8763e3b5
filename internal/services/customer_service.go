package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// Compile-time check to ensure CustomerServiceImpl implements CustomerService
var _ CustomerService = (*CustomerServiceImpl)(nil)

// CustomerServiceImpl implements CustomerService
type CustomerServiceImpl struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerServiceImpl
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerServiceImpl {
	return &CustomerServiceImpl{customerRepo: customerRepo}
}

// CreateCustomer registers a customer; the phone number must be unique
func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.Name == "" {
		return models.NewValidationError("name", "name must not be empty")
	}
	if customer.Phone == "" {
		return models.NewValidationError("phone", "phone must not be empty")
	}
	existing, err := s.customerRepo.FindByPhone(ctx, customer.Phone)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check customer phone: %w", err)
	}
	if existing != nil {
		return &models.ConflictError{Resource: "customer", Message: fmt.Sprintf("phone %q is already registered", customer.Phone)}
	}
	customer.IsActive = true
	return s.customerRepo.Create(ctx, customer)
}

// GetCustomerByID retrieves one customer
func (s *CustomerServiceImpl) GetCustomerByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("customer", id.Hex())
		}
		return nil, err
	}
	return customer, nil
}

// GetAllCustomers lists customers with pagination
func (s *CustomerServiceImpl) GetAllCustomers(ctx context.Context, page, limit int) ([]*models.Customer, error) {
	return s.customerRepo.FindAll(ctx, page, limit)
}

// UpdateCustomer replaces a customer record
func (s *CustomerServiceImpl) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	if _, err := s.GetCustomerByID(ctx, customer.ID); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, customer)
}

// DeactivateCustomer soft-deletes a customer
func (s *CustomerServiceImpl) DeactivateCustomer(ctx context.Context, id primitive.ObjectID) error {
	err := s.customerRepo.Deactivate(ctx, id)
	if err == mongo.ErrNoDocuments {
		return models.NewNotFoundError("customer", id.Hex())
	}
	return err
}

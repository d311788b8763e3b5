package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/gasops/cylinder-backend/internal/config"
	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
	"github.com/gasops/cylinder-backend/internal/utils"
)

// ErrInvalidCredentials is returned on a failed login without revealing
// whether the email or the password was wrong
var ErrInvalidCredentials = errors.New("invalid email or password")

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl implements AuthService for admin accounts
type AuthServiceImpl struct {
	userRepo repositories.AdminUserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, cfg: cfg}
}

// Register creates an admin account with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, req models.RegisterRequest) (*models.AdminUser, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, &models.ConflictError{Resource: "admin user", Message: fmt.Sprintf("email %q is already registered", req.Email)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	user := &models.AdminUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	slog.Info("Admin user registered", "userId", user.ID.Hex(), "email", user.Email, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues a signed JWT
func (s *AuthServiceImpl) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// GetUserByID retrieves an admin user
func (s *AuthServiceImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("admin user", id.Hex())
		}
		return nil, err
	}
	return user, nil
}

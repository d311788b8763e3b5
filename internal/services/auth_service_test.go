package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/config"
	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories/memory"
	"github.com/gasops/cylinder-backend/internal/utils"
)

func newAuthFixture() *AuthServiceImpl {
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
	return NewAuthService(memory.NewAdminUserRepository(), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Okafor",
		Email:     "jane@example.com",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", user.Role)
	assert.NotEqual(t, "correct horse battery", user.Password) // stored hashed

	resp, err := svc.Login(ctx, models.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := utils.ValidateJWT(resp.Token, svc.cfg)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, "staff", claims["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		FirstName: "Jane", LastName: "Okafor",
		Email: "jane@example.com", Password: "password-one",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{
		FirstName: "Other", LastName: "Person",
		Email: "jane@example.com", Password: "password-two",
	})
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		FirstName: "Jane", LastName: "Okafor",
		Email: "jane@example.com", Password: "the-real-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc := newAuthFixture()
	_, err := svc.GetUserByID(context.Background(), primitive.NewObjectID())
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret-a", ExpiresIn: 3600}}
	token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "admin", cfg)
	require.NoError(t, err)

	other := &config.Config{JWT: config.JWTConfig{Secret: "secret-b"}}
	_, err = utils.ValidateJWT(token, other)
	assert.Error(t, err)
}

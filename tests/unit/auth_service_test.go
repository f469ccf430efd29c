package unit_test

import (
	"context"
	"testing"
	"time"

	"gymadmin/internal/config"
	"gymadmin/internal/domain"
	"gymadmin/internal/service/auth"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &domain.User{
		ID:           uuid.New(),
		Email:        "admin@gym.test",
		PasswordHash: string(hash),
		FullName:     "Gym Admin",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		loggedIn, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, int64((15 * time.Minute).Seconds()), tokens.ExpiresIn)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)

		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "nope"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Inactive User", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		user.IsActive = false
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		mockUserRepo.On("GetByEmail", ctx, "ghost@gym.test").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@gym.test", Password: "password123"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Refresh Issues New Pair", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})
		assert.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)

		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Access Token Rejected As Refresh", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})
		assert.NoError(t, err)

		_, err = svc.RefreshToken(ctx, tokens.AccessToken)

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Refresh Token Rejected As Access", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})
		assert.NoError(t, err)

		_, err = svc.ValidateAccessToken(tokens.RefreshToken)

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Deactivated User Cannot Refresh", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		user := activeUser(t, "password123")
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "password123"})
		assert.NoError(t, err)

		deactivated := *user
		deactivated.IsActive = false
		mockUserRepo.On("GetByID", ctx, user.ID).Return(&deactivated, nil).Once()

		_, err = svc.RefreshToken(ctx, tokens.RefreshToken)

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, authConfig())

		_, err := svc.RefreshToken(ctx, "not.a.jwt")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

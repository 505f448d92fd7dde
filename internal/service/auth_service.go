package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/auth"
	"github.com/spec-kit/coffee-shop-service/internal/config"
	"github.com/spec-kit/coffee-shop-service/internal/domain"
	"github.com/spec-kit/coffee-shop-service/internal/events"
	"github.com/spec-kit/coffee-shop-service/internal/repository"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterUser creates a new account. The email is checked before hashing so
// duplicates cost no bcrypt work.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered")
	} else if !apperrors.IsNoRows(err) {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewStoreError("Register failed", err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
	}))
	return user, nil
}

// LoginUser verifies credentials and returns the account.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if apperrors.IsNoRows(err) {
		return nil, apperrors.NewUnauthorized("User not found")
	}
	if err != nil {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorized("Invalid password")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

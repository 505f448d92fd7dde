package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/coffee-shop-service/internal/auth"
	"github.com/spec-kit/coffee-shop-service/internal/config"
	"github.com/spec-kit/coffee-shop-service/internal/domain"
	"github.com/spec-kit/coffee-shop-service/internal/repository/memory"
)

func newAuthService(repo *memory.UserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, AuthDependencies{UserRepo: repo})
}

func TestRegisterUserHashesPassword(t *testing.T) {
	repo := &memory.UserRepo{}
	svc := newAuthService(repo)

	user, err := svc.RegisterUser(context.Background(), "Sari", "sari@example.com", "kopi123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	require.Len(t, repo.Users, 1)
	stored := repo.Users[0].PasswordHash
	assert.NotEqual(t, "kopi123", stored)
	assert.NoError(t, auth.ComparePassword(stored, "kopi123"))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := &memory.UserRepo{Users: []domain.User{{ID: 1, Email: "sari@example.com", PasswordHash: "x"}}}
	svc := newAuthService(repo)

	_, err := svc.RegisterUser(context.Background(), "Sari", "sari@example.com", "kopi123")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, "Email already registered", messageOf(t, err))
	assert.Equal(t, 0, repo.CreateCalls, "no insert for duplicates")
}

func TestRegisterUserStoreFailures(t *testing.T) {
	lookupFail := &memory.UserRepo{LookupErr: errors.New("db down")}
	_, err := newAuthService(lookupFail).RegisterUser(context.Background(), "A", "a@b.c", "pw")
	assert.Equal(t, "Database error", messageOf(t, err))
	assert.Equal(t, 0, lookupFail.CreateCalls)

	insertFail := &memory.UserRepo{CreateErr: errors.New("unique violation")}
	_, err = newAuthService(insertFail).RegisterUser(context.Background(), "A", "a@b.c", "pw")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "Register failed", messageOf(t, err))
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	repo := &memory.UserRepo{}
	svc := newAuthService(repo)
	_, err := svc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia")
	require.NoError(t, err)

	user, err := svc.LoginUser(ctx, "budi@example.com", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "Budi", user.Name)

	_, err = svc.LoginUser(ctx, "budi@example.com", "salah")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.Equal(t, "Invalid password", messageOf(t, err))

	_, err = svc.LoginUser(ctx, "nobody@example.com", "rahasia")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.Equal(t, "User not found", messageOf(t, err))
}

func TestLoginUserStoreFailure(t *testing.T) {
	svc := newAuthService(&memory.UserRepo{LookupErr: errors.New("db down")})

	_, err := svc.LoginUser(context.Background(), "a@b.c", "pw")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestRegisterAndLoginWithLongPassword(t *testing.T) {
	ctx := context.Background()
	repo := &memory.UserRepo{}
	svc := newAuthService(repo)
	password := strings.Repeat("p", 80)

	user, err := svc.RegisterUser(ctx, "A", "a@b.c", password)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.CreateCalls)

	loggedIn, err := svc.LoginUser(ctx, "a@b.c", password)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

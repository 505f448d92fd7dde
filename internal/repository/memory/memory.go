// Package memory provides in-memory repository implementations used by tests
// and local runs without Postgres.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
	"github.com/spec-kit/coffee-shop-service/internal/repository"
)

// MenuRepo serves a fixed catalog. Err, when set, is returned by every call.
type MenuRepo struct {
	mu        sync.Mutex
	Items     []domain.MenuItem
	Err       error
	ListCalls int
}

func (r *MenuRepo) ListAll(_ context.Context) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]domain.MenuItem{}, r.Items...), nil
}

func (r *MenuRepo) Search(_ context.Context, filter repository.MenuFilter) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	result := []domain.MenuItem{}
	needle := strings.ToLower(filter.Search)
	for _, item := range r.Items {
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		if filter.CategoryID != "" {
			if item.CategoryID == nil || strconv.FormatInt(*item.CategoryID, 10) != filter.CategoryID {
				continue
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// CategoryRepo serves a fixed category list.
type CategoryRepo struct {
	Categories []domain.Category
	Err        error
}

func (r *CategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]domain.Category{}, r.Categories...), nil
}

// OrderRepo stores orders in memory and assigns sequential ids.
type OrderRepo struct {
	mu        sync.Mutex
	Orders    []domain.Order
	CreateErr error
	ListErr   error
	Calls     int
}

func (r *OrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.CreateErr != nil {
		return r.CreateErr
	}
	order.ID = int64(len(r.Orders) + 1)
	order.CreatedAt = time.Now().UTC()
	r.Orders = append(r.Orders, *order)
	return nil
}

func (r *OrderRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	result := []domain.Order{}
	for _, o := range r.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// UserRepo stores users keyed by email.
type UserRepo struct {
	mu          sync.Mutex
	Users       []domain.User
	LookupErr   error
	CreateErr   error
	Lookups     int
	CreateCalls int
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	if r.CreateErr != nil {
		return r.CreateErr
	}
	user.ID = int64(len(r.Users) + 1)
	user.CreatedAt = time.Now().UTC()
	r.Users = append(r.Users, *user)
	return nil
}

// GetByEmail mirrors the Postgres repository and returns pgx.ErrNoRows on a miss.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	if r.LookupErr != nil {
		return nil, r.LookupErr
	}
	for _, u := range r.Users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

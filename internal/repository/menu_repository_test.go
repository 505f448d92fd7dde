package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMenuSearch(t *testing.T) {
	tests := []struct {
		name      string
		filter    MenuFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filter:    MenuFilter{},
			wantWhere: "WHERE 1=1 ORDER BY id",
			wantArgs:  []any{},
		},
		{
			name:      "search only",
			filter:    MenuFilter{Search: "latte"},
			wantWhere: "WHERE 1=1 AND name ILIKE $1 ORDER BY id",
			wantArgs:  []any{"%latte%"},
		},
		{
			name:      "category only",
			filter:    MenuFilter{CategoryID: "3"},
			wantWhere: "WHERE 1=1 AND category_id::text = $1 ORDER BY id",
			wantArgs:  []any{"3"},
		},
		{
			name:      "both",
			filter:    MenuFilter{Search: "50%_off", CategoryID: "2"},
			wantWhere: "WHERE 1=1 AND name ILIKE $1 AND category_id::text = $2 ORDER BY id",
			wantArgs:  []any{`%50\%\_off%`, "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildMenuSearch(tt.filter)
			assert.Contains(t, query, "FROM menu_items")
			assert.Contains(t, query, tt.wantWhere)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRepositoriesWithoutPool(t *testing.T) {
	ctx := context.Background()

	_, err := NewMenuRepository(nil).ListAll(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = NewCategoryRepository(nil).ListAll(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = NewOrderRepository(nil).ListByUser(ctx, 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = NewUserRepository(nil).GetByEmail(ctx, "a@b.c")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
	"github.com/spec-kit/coffee-shop-service/internal/observability"
	"github.com/spec-kit/coffee-shop-service/internal/repository"
	"github.com/spec-kit/coffee-shop-service/internal/resolver"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

const (
	msgDatabaseError   = "Database error"
	msgMenuIDRequired  = "Menu ID required"
	menuItemResource   = "Menu item"
	cacheResultHit     = "hit"
	cacheResultMiss    = "miss"
	cacheResultError   = "error"
	resolutionMatched  = "matched"
	resolutionNotFound = "not_found"
	resolutionInvalid  = "invalid"
)

// MenuSnapshotCache stores the full menu between requests.
type MenuSnapshotCache interface {
	Get(ctx context.Context) ([]domain.MenuItem, bool, error)
	Set(ctx context.Context, items []domain.MenuItem) error
}

// CatalogService serves menu and category reads.
type CatalogService struct {
	menu       repository.MenuRepository
	categories repository.CategoryRepository
	cache      MenuSnapshotCache
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// CatalogDependencies bundles collaborators for the catalog service. Cache and
// Metrics are optional.
type CatalogDependencies struct {
	MenuRepo     repository.MenuRepository
	CategoryRepo repository.CategoryRepository
	Cache        MenuSnapshotCache
	Logger       *zap.Logger
	Metrics      *observability.Metrics
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		menu:       deps.MenuRepo,
		categories: deps.CategoryRepo,
		cache:      deps.Cache,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}
	return categories, nil
}

// ListMenu returns the whole catalog.
func (s *CatalogService) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}
	return items, nil
}

// SearchMenu filters the catalog by name substring and category. Always reads
// from the store.
func (s *CatalogService) SearchMenu(ctx context.Context, filter repository.MenuFilter) ([]domain.MenuItem, error) {
	items, err := s.menu.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}
	return items, nil
}

// LookupMenuItem resolves a single item from an id, business id or slug.
func (s *CatalogService) LookupMenuItem(ctx context.Context, identifier string) (*domain.MenuItem, error) {
	if _, err := resolver.ParseQuery(identifier); err != nil {
		s.metrics.RecordResolution(resolutionInvalid, "", false)
		return nil, apperrors.NewValidationError(msgMenuIDRequired)
	}

	catalog, err := s.snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}

	res, err := resolver.Resolve(identifier, catalog)
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		s.metrics.RecordResolution(resolutionNotFound, "", false)
		return nil, apperrors.NewNotFound(menuItemResource)
	case errors.Is(err, resolver.ErrInvalidQuery):
		s.metrics.RecordResolution(resolutionInvalid, "", false)
		return nil, apperrors.NewValidationError(msgMenuIDRequired)
	case err != nil:
		return nil, apperrors.NewInternalError(err)
	}

	if res.Ambiguous() {
		ids := make([]int64, 0, len(res.Candidates))
		for _, c := range res.Candidates {
			ids = append(ids, c.Item.ID)
		}
		s.logger.Warn("menu identifier matched several items",
			zap.String("identifier", identifier),
			zap.Int64("chosen_id", res.Item.ID),
			zap.String("strategy", res.Strategy.String()),
			zap.Int64s("candidate_ids", ids))
	}
	s.metrics.RecordResolution(resolutionMatched, res.Strategy.String(), res.Ambiguous())

	item := res.Item
	return &item, nil
}

// snapshot returns the full menu, preferring the cache. Cache failures fall
// back to the store.
func (s *CatalogService) snapshot(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.metrics.RecordCacheLookup(cacheResultError)
			s.logger.Warn("menu cache read failed", zap.Error(err))
		case ok:
			s.metrics.RecordCacheLookup(cacheResultHit)
			return items, nil
		default:
			s.metrics.RecordCacheLookup(cacheResultMiss)
		}
	}

	items, err := s.menu.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, items); err != nil {
			s.logger.Warn("menu cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
	"github.com/bazarhat/backend/internal/pkg/validate"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("category input invalid")
	ErrNotFound   = errors.New("category not found")
)

const (
	cacheKeyActive  = "cache:categories:active"
	cacheKeySubs    = "cache:subcategories:"
	defaultCacheTTL = 10 * time.Minute
)

type CategoryStore interface {
	ListActive(ctx context.Context) ([]model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (int64, error)
	Update(ctx context.Context, c model.Category) error
	ListSubcategories(ctx context.Context, categoryID int64, activeOnly bool) ([]model.Subcategory, error)
	CreateSubcategory(ctx context.Context, s model.Subcategory) (int64, error)
}

// Cache is a read-through JSON cache. A nil or failing cache never breaks
// reads; the database remains the source of truth.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	store CategoryStore
	cache Cache
	ttl   time.Duration
}

func NewService(store CategoryStore, cache Cache) *Service {
	return &Service{store: store, cache: cache, ttl: defaultCacheTTL}
}

func (s *Service) ListActive(ctx context.Context) ([]model.Category, error) {
	if s.cache != nil {
		var cached []model.Category
		if hit, err := s.cache.GetJSON(ctx, cacheKeyActive, &cached); err == nil && hit {
			return cached, nil
		}
	}

	cats, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKeyActive, cats, s.ttl)
	}
	return cats, nil
}

// ListAll is for the admin surface and skips the cache.
func (s *Service) ListAll(ctx context.Context) ([]model.Category, error) {
	cats, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Category, error) {
	cat, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrCategoryNotFound) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

func (s *Service) Subcategories(ctx context.Context, categoryID int64, activeOnly bool) ([]model.Subcategory, error) {
	key := fmt.Sprintf("%s%d", cacheKeySubs, categoryID)
	if activeOnly && s.cache != nil {
		var cached []model.Subcategory
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	subs, err := s.store.ListSubcategories(ctx, categoryID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	if activeOnly && s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, subs, s.ttl)
	}
	return subs, nil
}

type CategoryInput struct {
	Name      string
	Slug      string
	Icon      string
	SortOrder int
	IsActive  bool
}

func (s *Service) Create(ctx context.Context, input CategoryInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || !validate.Required(input.Slug) {
		return 0, ErrValidation
	}

	id, err := s.store.Create(ctx, model.Category{
		Name:      name,
		Slug:      strings.TrimSpace(input.Slug),
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	})
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}

	s.invalidate(ctx)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int64, input CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Slug) == "" {
		return ErrValidation
	}

	err := s.store.Update(ctx, model.Category{
		ID:        id,
		Name:      name,
		Slug:      strings.TrimSpace(input.Slug),
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrCategoryNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update category: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

type SubcategoryInput struct {
	CategoryID int64
	Name       string
	Slug       string
	SortOrder  int
	IsActive   bool
}

func (s *Service) CreateSubcategory(ctx context.Context, input SubcategoryInput) (int64, error) {
	if input.CategoryID == 0 || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Slug) == "" {
		return 0, ErrValidation
	}
	if _, err := s.Get(ctx, input.CategoryID); err != nil {
		return 0, err
	}

	id, err := s.store.CreateSubcategory(ctx, model.Subcategory{
		CategoryID: input.CategoryID,
		Name:       strings.TrimSpace(input.Name),
		Slug:       strings.TrimSpace(input.Slug),
		SortOrder:  input.SortOrder,
		IsActive:   input.IsActive,
	})
	if err != nil {
		return 0, fmt.Errorf("create subcategory: %w", err)
	}

	s.invalidate(ctx, input.CategoryID)
	return id, nil
}

func (s *Service) invalidate(ctx context.Context, categoryIDs ...int64) {
	if s.cache == nil {
		return
	}
	keys := []string{cacheKeyActive}
	for _, id := range categoryIDs {
		keys = append(keys, fmt.Sprintf("%s%d", cacheKeySubs, id))
	}
	_ = s.cache.Delete(ctx, keys...)
}

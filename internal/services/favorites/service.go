package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("favorite input invalid")
	ErrNotFound     = errors.New("favorite target not found")
	ErrLimitReached = errors.New("saved search limit reached")
)

const maxSavedSearches = 20

type FavoriteStore interface {
	Add(ctx context.Context, userID, adID uuid.UUID) error
	Remove(ctx context.Context, userID, adID uuid.UUID) error
	Exists(ctx context.Context, userID, adID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Favorite, error)
	CountByAd(ctx context.Context, adID uuid.UUID) (int, error)
}

type SavedSearchStore interface {
	Create(ctx context.Context, search model.SavedSearch) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SavedSearch, error)
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type AdStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Ad, error)
}

type Service struct {
	favorites FavoriteStore
	searches  SavedSearchStore
	ads       AdStore
	pageSize  int
}

func NewService(favorites FavoriteStore, searches SavedSearchStore, ads AdStore, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 24
	}
	return &Service{favorites: favorites, searches: searches, ads: ads, pageSize: pageSize}
}

// Add favorites an approved ad. Repeat calls are no-ops.
func (s *Service) Add(ctx context.Context, userID, adID uuid.UUID) error {
	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load ad: %w", err)
	}
	if ad.Status != enums.AdStatusApproved || ad.IsArchived || ad.IsDeactivated {
		return ErrValidation
	}

	if err := s.favorites.Add(ctx, userID, adID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, userID, adID uuid.UUID) error {
	if err := s.favorites.Remove(ctx, userID, adID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (s *Service) IsFavorite(ctx context.Context, userID, adID uuid.UUID) (bool, error) {
	return s.favorites.Exists(ctx, userID, adID)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page int) ([]model.Favorite, error) {
	if page < 1 {
		page = 1
	}
	favs, err := s.favorites.ListByUser(ctx, userID, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

func (s *Service) CountForAd(ctx context.Context, adID uuid.UUID) (int, error) {
	return s.favorites.CountByAd(ctx, adID)
}

type SavedSearchInput struct {
	Name  string
	Query map[string]any
}

func (s *Service) SaveSearch(ctx context.Context, userID uuid.UUID, input SavedSearchInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(input.Query) == 0 {
		return 0, ErrValidation
	}

	existing, err := s.searches.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list saved searches: %w", err)
	}
	if len(existing) >= maxSavedSearches {
		return 0, ErrLimitReached
	}

	id, err := s.searches.Create(ctx, model.SavedSearch{
		UserID: userID,
		Name:   name,
		Query:  input.Query,
	})
	if err != nil {
		return 0, fmt.Errorf("save search: %w", err)
	}
	return id, nil
}

func (s *Service) ListSearches(ctx context.Context, userID uuid.UUID) ([]model.SavedSearch, error) {
	searches, err := s.searches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return searches, nil
}

func (s *Service) DeleteSearch(ctx context.Context, id int64, userID uuid.UUID) error {
	if err := s.searches.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, pgrepo.ErrSavedSearchNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete saved search: %w", err)
	}
	return nil
}

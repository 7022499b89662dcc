package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	"github.com/bazarhat/backend/internal/services/moderation"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var ErrValidation = errors.New("search input invalid")

type AdSearchStore interface {
	AdminSearch(ctx context.Context, f pgrepo.AdminSearchFilters) ([]model.Ad, int, error)
	BulkApprove(ctx context.Context, ids []uuid.UUID, reviewerID uuid.UUID, at time.Time) (pgrepo.BulkResult, error)
	BulkReject(ctx context.Context, ids []uuid.UUID, reviewerID uuid.UUID, reasons []string, at time.Time) (pgrepo.BulkResult, error)
	BulkSetDeactivated(ctx context.Context, ids []uuid.UUID, deactivated bool) (pgrepo.BulkResult, error)
	BulkSetArchived(ctx context.Context, ids []uuid.UUID, archived bool) (pgrepo.BulkResult, error)
}

type AuditStore interface {
	Create(ctx context.Context, entry model.AdAuditLog) error
}

type Service struct {
	ads      AdSearchStore
	audits   AuditStore
	pageSize int
	now      func() time.Time
}

func NewService(ads AdSearchStore, audits AuditStore, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 24
	}

	return &Service{
		ads:      ads,
		audits:   audits,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Filters are the admin search facets. The free-text Query is classified here;
// tag membership (ad type, product types, features) is filtered in memory
// after the fetch since those live in array columns the form treats as chips.
type Filters struct {
	Query string

	CategoryID    *int64
	SubcategoryID *int64
	Location      string

	RejectionReason string
	ReviewedBy      *uuid.UUID

	Statuses          []enums.AdStatus
	NeedsVerification *bool
	IsDeactivated     *bool
	IsArchived        *bool

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	AdType       string
	ProductTypes []string
	Features     []string

	Page int
}

type Result struct {
	Ads   []model.Ad
	Total int
	Page  int
}

func (s *Service) SearchAds(ctx context.Context, f Filters) (Result, error) {
	repoFilters := pgrepo.AdminSearchFilters{
		CategoryID:        f.CategoryID,
		SubcategoryID:     f.SubcategoryID,
		Location:          f.Location,
		RejectionReason:   f.RejectionReason,
		ReviewedBy:        f.ReviewedBy,
		Statuses:          f.Statuses,
		NeedsVerification: f.NeedsVerification,
		IsDeactivated:     f.IsDeactivated,
		IsArchived:        f.IsArchived,
		CreatedFrom:       f.CreatedFrom,
		CreatedTo:         f.CreatedTo,
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		switch ClassifyQuery(q) {
		case ClassUUID:
			id, err := uuid.Parse(q)
			if err != nil {
				return Result{}, ErrValidation
			}
			repoFilters.QueryUUID = &id
		case ClassEmail:
			repoFilters.QueryEmail = q
		case ClassPhone:
			repoFilters.QueryPhone = strings.Map(keepPhoneRune, q)
		default:
			repoFilters.QuerySlug = q
		}
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	repoFilters.Limit = s.pageSize
	repoFilters.Offset = (page - 1) * s.pageSize

	ads, total, err := s.ads.AdminSearch(ctx, repoFilters)
	if err != nil {
		return Result{}, fmt.Errorf("admin search: %w", err)
	}

	ads = filterByTags(ads, f.AdType, f.ProductTypes, f.Features)

	return Result{Ads: ads, Total: total, Page: page}, nil
}

// BulkAction names one batched mutation over a selected id set.
type BulkAction string

const (
	BulkApprove    BulkAction = "approve"
	BulkReject     BulkAction = "reject"
	BulkDeactivate BulkAction = "deactivate"
	BulkReactivate BulkAction = "reactivate"
	BulkArchive    BulkAction = "archive"
	BulkUnarchive  BulkAction = "unarchive"
)

// BulkUpdateAds applies one action to the selection in a single batched
// update. An empty selection no-ops with a validation error; bulk reject
// additionally requires at least one taxonomy reason.
func (s *Service) BulkUpdateAds(ctx context.Context, ids []uuid.UUID, action BulkAction, reasons []string, actorID uuid.UUID) (pgrepo.BulkResult, error) {
	if len(ids) == 0 {
		return pgrepo.BulkResult{}, ErrValidation
	}

	now := s.now().UTC()
	var (
		result pgrepo.BulkResult
		err    error
	)

	switch action {
	case BulkApprove:
		result, err = s.ads.BulkApprove(ctx, ids, actorID, now)
	case BulkReject:
		if len(reasons) == 0 {
			return pgrepo.BulkResult{}, ErrValidation
		}
		for _, reason := range reasons {
			if !moderation.IsAllowedRejectReason(reason) {
				return pgrepo.BulkResult{}, ErrValidation
			}
		}
		result, err = s.ads.BulkReject(ctx, ids, actorID, reasons, now)
	case BulkDeactivate:
		result, err = s.ads.BulkSetDeactivated(ctx, ids, true)
	case BulkReactivate:
		result, err = s.ads.BulkSetDeactivated(ctx, ids, false)
	case BulkArchive:
		result, err = s.ads.BulkSetArchived(ctx, ids, true)
	case BulkUnarchive:
		result, err = s.ads.BulkSetArchived(ctx, ids, false)
	default:
		return pgrepo.BulkResult{}, ErrValidation
	}
	if err != nil {
		return pgrepo.BulkResult{}, fmt.Errorf("bulk %s: %w", action, err)
	}

	if s.audits != nil {
		for _, id := range ids {
			_ = s.audits.Create(ctx, model.AdAuditLog{
				AdID:    id,
				ActorID: actorID,
				Action:  "bulk_" + string(action),
				Details: map[string]any{"reasons": reasons},
			})
		}
	}

	return result, nil
}

func filterByTags(ads []model.Ad, adType string, productTypes, features []string) []model.Ad {
	if adType == "" && len(productTypes) == 0 && len(features) == 0 {
		return ads
	}

	out := ads[:0]
	for _, ad := range ads {
		if adType != "" && ad.AdType != adType {
			continue
		}
		if !containsAll(ad.ProductTypes, productTypes) {
			continue
		}
		if !containsAll(ad.Features, features) {
			continue
		}
		out = append(out, ad)
	}
	return out
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func keepPhoneRune(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	if r == '+' {
		return r
	}
	return -1
}

package ads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
	"github.com/bazarhat/backend/internal/services/moderation"
)

var (
	ErrValidation = errors.New("ad input invalid")
	ErrNotFound   = errors.New("ad not found")
	ErrNotOwner   = errors.New("not the ad owner")
)

type RateLimitedError struct {
	RetryAfterSec int64
}

func (e RateLimitedError) Error() string {
	return "posting rate limited"
}

func (e RateLimitedError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsRateLimited(err error) (*RateLimitedError, bool) {
	var rl RateLimitedError
	if errors.As(err, &rl) {
		return &rl, true
	}
	return nil, false
}

// trustedSellerKey switches the auto-moderation shortcut for returning
// sellers with enough approved ads.
const trustedSellerKey = "trusted_seller_auto_approve"

type AdStore interface {
	Create(ctx context.Context, ad model.Ad) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Ad, error)
	GetBySlug(ctx context.Context, slug string) (model.Ad, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Browse(ctx context.Context, f pgrepo.BrowseFilters) ([]model.Ad, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.Ad, error)
	UpdateOwnerPending(ctx context.Context, id, ownerID uuid.UUID, patch pgrepo.AdReviewPatch) error
	SetSold(ctx context.Context, id, ownerID uuid.UUID) error
	SetDeactivatedByOwner(ctx context.Context, id, ownerID uuid.UUID, deactivated bool) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type EditRequestStore interface {
	Create(ctx context.Context, req model.AdEditRequest) error
	HasPendingForAd(ctx context.Context, adID uuid.UUID) (bool, error)
}

type ImageStore interface {
	ReplaceAll(ctx context.Context, adID uuid.UUID, objectKeys []string) error
	ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdImage, error)
}

type AutoModStore interface {
	Get(ctx context.Context, key string) (model.AutoModerationSetting, error)
}

type PostLimiter interface {
	AllowPost(ctx context.Context, userID uuid.UUID) (int64, bool, error)
}

type Service struct {
	ads        AdStore
	requests   EditRequestStore
	images     ImageStore
	automod    AutoModStore
	limiter    PostLimiter
	pageSize   int
	expiryDays int
	now        func() time.Time
}

func NewService(ads AdStore, requests EditRequestStore, images ImageStore, automod AutoModStore, limiter PostLimiter, pageSize, expiryDays int) *Service {
	if pageSize <= 0 {
		pageSize = 24
	}
	if expiryDays <= 0 {
		expiryDays = 30
	}

	return &Service{
		ads:        ads,
		requests:   requests,
		images:     images,
		automod:    automod,
		limiter:    limiter,
		pageSize:   pageSize,
		expiryDays: expiryDays,
		now:        time.Now,
	}
}

type SubmitInput struct {
	Title         string
	Description   string
	CategoryID    *int64
	SubcategoryID *int64
	CustomFields  map[string]any

	Price     *float64
	PriceType enums.PriceType
	MRP       *float64
	Discount  *float64

	AdType       string
	ProductTypes []string
	Features     []string

	Division string
	District string
	Area     string

	ImageKeys []string
}

// Submit creates a pending ad for the seller. The first ad a seller ever
// posts is flagged first_time_poster and lands in the member queue. Trusted
// sellers may skip straight to approved-with-verification when the
// auto-moderation switch is on.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (model.Ad, error) {
	if userID == uuid.Nil {
		return model.Ad{}, ErrValidation
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Description) == "" {
		return model.Ad{}, ErrValidation
	}
	if input.PriceType != "" && !input.PriceType.Valid() {
		return model.Ad{}, ErrValidation
	}

	if s.limiter != nil {
		retryAfter, allowed, err := s.limiter.AllowPost(ctx, userID)
		if err != nil {
			return model.Ad{}, fmt.Errorf("check posting rate: %w", err)
		}
		if !allowed {
			return model.Ad{}, RateLimitedError{RetryAfterSec: retryAfter}
		}
	}

	priorAds, err := s.ads.CountByUser(ctx, userID)
	if err != nil {
		return model.Ad{}, fmt.Errorf("count seller ads: %w", err)
	}

	now := s.now().UTC()
	promo := moderation.DerivePromotion(input.ProductTypes, nil)
	ad := model.Ad{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		CustomFields:  input.CustomFields,

		Price:     input.Price,
		PriceType: input.PriceType,
		MRP:       input.MRP,
		Discount:  input.Discount,

		AdType:       input.AdType,
		ProductTypes: input.ProductTypes,
		Features:     input.Features,

		Division: input.Division,
		District: input.District,
		Area:     input.Area,

		Status:          enums.AdStatusPending,
		FirstTimePoster: priorAds == 0,

		IsFeatured:    promo.IsFeatured,
		PromotionType: promo.PromotionType,
	}
	ad.Slug = GenerateSlug(title, ad.ID)

	if !hasTag(input.Features, enums.FeatureNoExpiration) {
		expiry := now.AddDate(0, 0, s.expiryDays)
		ad.ExpiresAt = &expiry
	}

	if routed, routeErr := s.autoApprove(ctx, userID, priorAds); routeErr != nil {
		return model.Ad{}, routeErr
	} else if routed {
		ad.Status = enums.AdStatusApproved
		ad.NeedsVerification = true
	}

	if err := s.ads.Create(ctx, ad); err != nil {
		return model.Ad{}, fmt.Errorf("create ad: %w", err)
	}

	if len(input.ImageKeys) > 0 && s.images != nil {
		if err := s.images.ReplaceAll(ctx, ad.ID, input.ImageKeys); err != nil {
			return model.Ad{}, fmt.Errorf("attach ad images: %w", err)
		}
	}

	return ad, nil
}

func (s *Service) autoApprove(ctx context.Context, userID uuid.UUID, priorAds int) (bool, error) {
	if s.automod == nil || priorAds == 0 {
		return false, nil
	}

	setting, err := s.automod.Get(ctx, trustedSellerKey)
	if err != nil {
		return false, fmt.Errorf("load auto moderation setting: %w", err)
	}
	if !setting.Enabled {
		return false, nil
	}

	return priorAds >= setting.Threshold, nil
}

type BrowseInput struct {
	CategoryID    *int64
	SubcategoryID *int64
	Division      string
	District      string
	PriceMin      *float64
	PriceMax      *float64
	Text          string
	Page          int
}

func (s *Service) Browse(ctx context.Context, input BrowseInput) ([]model.Ad, int, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	ads, total, err := s.ads.Browse(ctx, pgrepo.BrowseFilters{
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		Division:      input.Division,
		District:      input.District,
		PriceMin:      input.PriceMin,
		PriceMax:      input.PriceMax,
		Text:          input.Text,
		Limit:         s.pageSize,
		Offset:        (page - 1) * s.pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("browse ads: %w", err)
	}

	return ads, total, nil
}

// Detail resolves by embedded UUID or slug and bumps the view counter. The
// increment is deliberately not de-duplicated; every detail load counts.
func (s *Service) Detail(ctx context.Context, ref string) (model.Ad, []model.AdImage, error) {
	ad, err := s.resolve(ctx, ref)
	if err != nil {
		return model.Ad{}, nil, err
	}

	if err := s.ads.IncrementViews(ctx, ad.ID); err != nil {
		return model.Ad{}, nil, fmt.Errorf("increment views: %w", err)
	}
	ad.ViewsCount++

	var images []model.AdImage
	if s.images != nil {
		images, err = s.images.ListByAd(ctx, ad.ID)
		if err != nil {
			return model.Ad{}, nil, fmt.Errorf("load ad images: %w", err)
		}
	}

	return ad, images, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID, page int) ([]model.Ad, error) {
	if page < 1 {
		page = 1
	}
	ads, err := s.ads.ListByOwner(ctx, ownerID, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list owner ads: %w", err)
	}
	return ads, nil
}

type EditInput struct {
	Title         string
	Description   string
	CategoryID    *int64
	SubcategoryID *int64
	CustomFields  map[string]any

	Price     *float64
	PriceType enums.PriceType
	MRP       *float64
	Discount  *float64

	AdType       string
	ProductTypes []string
	Features     []string

	Division string
	District string
	Area     string
}

// EditResult reports how an owner edit was applied.
type EditResult struct {
	// Direct is true when the pending ad was updated in place; false when an
	// edit request was created for moderator review.
	Direct    bool
	RequestID uuid.UUID
}

// Edit applies an owner's changes. Pending ads update in place and stay
// pending; approved ads produce an edit request snapshotting the editable
// fields, one pending request per ad at a time.
func (s *Service) Edit(ctx context.Context, adID, ownerID uuid.UUID, input EditInput) (EditResult, error) {
	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return EditResult{}, ErrNotFound
		}
		return EditResult{}, fmt.Errorf("load ad: %w", err)
	}
	if ad.UserID != ownerID {
		return EditResult{}, ErrNotOwner
	}
	if strings.TrimSpace(input.Title) == "" {
		return EditResult{}, ErrValidation
	}

	switch ad.Status {
	case enums.AdStatusPending:
		promo := moderation.DerivePromotion(input.ProductTypes, ad.PromotionExpiresAt)
		patch := pgrepo.AdReviewPatch{
			Title:         strings.TrimSpace(input.Title),
			Description:   input.Description,
			CategoryID:    input.CategoryID,
			SubcategoryID: input.SubcategoryID,
			CustomFields:  input.CustomFields,
			Price:         input.Price,
			PriceType:     input.PriceType,
			MRP:           input.MRP,
			Discount:      input.Discount,
			AdType:        input.AdType,
			ProductTypes:  input.ProductTypes,
			Features:      input.Features,
			Division:      input.Division,
			District:      input.District,
			Area:          input.Area,

			IsFeatured:         promo.IsFeatured,
			PromotionType:      promo.PromotionType,
			PromotionExpiresAt: promo.ExpiresAt,
			ExpiresAt:          ad.ExpiresAt,
		}
		if err := s.ads.UpdateOwnerPending(ctx, adID, ownerID, patch); err != nil {
			return EditResult{}, fmt.Errorf("update pending ad: %w", err)
		}
		return EditResult{Direct: true}, nil

	case enums.AdStatusApproved:
		pending, err := s.requests.HasPendingForAd(ctx, adID)
		if err != nil {
			return EditResult{}, fmt.Errorf("check pending edit request: %w", err)
		}
		if pending {
			return EditResult{}, ErrValidation
		}

		request := model.AdEditRequest{
			ID:        uuid.New(),
			AdID:      adID,
			UserID:    ownerID,
			OldValues: editableSnapshot(ad),
			NewValues: inputSnapshot(input),
			Status:    enums.EditRequestPending,
		}
		if err := s.requests.Create(ctx, request); err != nil {
			return EditResult{}, fmt.Errorf("create edit request: %w", err)
		}
		return EditResult{RequestID: request.ID}, nil

	default:
		return EditResult{}, ErrValidation
	}
}

func (s *Service) MarkSold(ctx context.Context, adID, ownerID uuid.UUID) error {
	if err := s.ads.SetSold(ctx, adID, ownerID); err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("mark sold: %w", err)
	}
	return nil
}

func (s *Service) SetDeactivated(ctx context.Context, adID, ownerID uuid.UUID, deactivated bool) error {
	if err := s.ads.SetDeactivatedByOwner(ctx, adID, ownerID, deactivated); err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set deactivated: %w", err)
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, ref string) (model.Ad, error) {
	if idStr, ok := moderation.ExtractUUID(ref); ok {
		id, parseErr := uuid.Parse(idStr)
		if parseErr == nil {
			ad, err := s.ads.GetByID(ctx, id)
			if err == nil {
				return ad, nil
			}
			if !errors.Is(err, pgrepo.ErrAdNotFound) {
				return model.Ad{}, err
			}
		}
	}

	slug := moderation.ExtractSlug(ref)
	if slug == "" {
		return model.Ad{}, ErrNotFound
	}
	ad, err := s.ads.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return model.Ad{}, ErrNotFound
		}
		return model.Ad{}, err
	}
	return ad, nil
}

// editableSnapshot captures the fields an edit request may change.
func editableSnapshot(ad model.Ad) map[string]any {
	return map[string]any{
		"title":          ad.Title,
		"description":    ad.Description,
		"category_id":    ad.CategoryID,
		"subcategory_id": ad.SubcategoryID,
		"custom_fields":  ad.CustomFields,
		"price":          ad.Price,
		"price_type":     string(ad.PriceType),
		"mrp":            ad.MRP,
		"discount":       ad.Discount,
		"ad_type":        ad.AdType,
		"product_types":  ad.ProductTypes,
		"features":       ad.Features,
		"division":       ad.Division,
		"district":       ad.District,
		"area":           ad.Area,
	}
}

func inputSnapshot(input EditInput) map[string]any {
	return map[string]any{
		"title":          strings.TrimSpace(input.Title),
		"description":    input.Description,
		"category_id":    input.CategoryID,
		"subcategory_id": input.SubcategoryID,
		"custom_fields":  input.CustomFields,
		"price":          input.Price,
		"price_type":     string(input.PriceType),
		"mrp":            input.MRP,
		"discount":       input.Discount,
		"ad_type":        input.AdType,
		"product_types":  input.ProductTypes,
		"features":       input.Features,
		"division":       input.Division,
		"district":       input.District,
		"area":           input.Area,
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

const signedURLTTL = 5 * time.Minute

var (
	ErrQueueEmpty = errors.New("moderation queue is empty")
	ErrNotFound   = errors.New("moderation item not found")
	ErrValidation = errors.New("moderation input invalid")
)

type AdStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Ad, error)
	GetBySlug(ctx context.Context, slug string) (model.Ad, error)
	NextPending(ctx context.Context, firstTimePoster bool) (model.Ad, error)
	NextNeedsVerification(ctx context.Context) (model.Ad, error)
	UpdateReview(ctx context.Context, id uuid.UUID, patch pgrepo.AdReviewPatch) error
	SetApproved(ctx context.Context, id, reviewerID uuid.UUID, at time.Time) error
	SetRejected(ctx context.Context, id, reviewerID uuid.UUID, reasons []string, message string, duplicateOf *uuid.UUID, at time.Time) error
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, patch pgrepo.ProfileReviewPatch) error
}

type EditRequestStore interface {
	NextPending(ctx context.Context) (model.AdEditRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.AdEditRequest, error)
	LatestPendingByAd(ctx context.Context, adID uuid.UUID) (model.AdEditRequest, error)
	SetApproved(ctx context.Context, id, reviewerID uuid.UUID, at time.Time) error
	SetRejected(ctx context.Context, id, reviewerID uuid.UUID, message string, at time.Time) error
}

type ImageStore interface {
	ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdImage, error)
}

type AuditStore interface {
	Create(ctx context.Context, entry model.AdAuditLog) error
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service struct {
	ads        AdStore
	profiles   ProfileStore
	requests   EditRequestStore
	images     ImageStore
	audits     AuditStore
	signer     URLSigner
	expiryDays int
	diffRowCap int
	now        func() time.Time
}

func NewService(ads AdStore, profiles ProfileStore, requests EditRequestStore, images ImageStore, audits AuditStore, signer URLSigner, expiryDays int) *Service {
	if expiryDays <= 0 {
		expiryDays = 30
	}

	return &Service{
		ads:        ads,
		profiles:   profiles,
		requests:   requests,
		images:     images,
		audits:     audits,
		signer:     signer,
		expiryDays: expiryDays,
		now:        time.Now,
	}
}

// AdForm mirrors the editable ad fields the moderator's form holds. Promotion
// and expiry columns are derived on save, never taken from the form.
type AdForm struct {
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

// ProfileForm mirrors the editable seller fields on the review screen.
type ProfileForm struct {
	DisplayName   string
	Email         string
	Phone         string
	AltPhone      string
	SellerType    string
	ShowPhone     bool
	PhoneVerified bool
}

// QueueItem is the full review bundle for one work item.
type QueueItem struct {
	Queue       enums.ModerationQueue
	Ad          model.Ad
	Profile     model.Profile
	ImageURLs   []string
	EditRequest *model.AdEditRequest
	Diff        []DiffEntry
	// DiffOverflow is the number of changed rows hidden past the row cap.
	DiffOverflow int
}

// SetDiffRowCap limits how many diff rows a queue item carries; zero means
// uncapped.
func (s *Service) SetDiffRowCap(cap int) {
	if cap < 0 {
		cap = 0
	}
	s.diffRowCap = cap
}

// NextQueueItem resolves the oldest matching work item for the named queue.
// Read-only; an empty queue is ErrQueueEmpty.
func (s *Service) NextQueueItem(ctx context.Context, queue enums.ModerationQueue) (QueueItem, error) {
	switch queue {
	case enums.QueueGeneral:
		ad, err := s.ads.NextPending(ctx, false)
		if err != nil {
			return QueueItem{}, mapQueueErr(err)
		}
		return s.buildItem(ctx, queue, ad, nil)
	case enums.QueueMember:
		ad, err := s.ads.NextPending(ctx, true)
		if err != nil {
			return QueueItem{}, mapQueueErr(err)
		}
		return s.buildItem(ctx, queue, ad, nil)
	case enums.QueueVerification:
		ad, err := s.ads.NextNeedsVerification(ctx)
		if err != nil {
			return QueueItem{}, mapQueueErr(err)
		}
		return s.buildItem(ctx, queue, ad, nil)
	case enums.QueueEdited:
		request, err := s.requests.NextPending(ctx)
		if err != nil {
			return QueueItem{}, mapQueueErr(err)
		}
		ad, err := s.ads.GetByID(ctx, request.AdID)
		if err != nil {
			return QueueItem{}, fmt.Errorf("load ad for edit request: %w", err)
		}
		return s.buildItem(ctx, queue, ad, &request)
	default:
		return QueueItem{}, ErrValidation
	}
}

// Lookup resolves a work item by pasted identifier: an embedded UUID is
// preferred, else the trailing URL path segment is treated as a slug. For the
// edited queue the UUID is tried as a request id first, then as an ad id.
func (s *Service) Lookup(ctx context.Context, queue enums.ModerationQueue, raw string) (QueueItem, error) {
	if queue == enums.QueueEdited {
		return s.lookupEdited(ctx, raw)
	}

	ad, err := s.lookupAd(ctx, raw)
	if err != nil {
		return QueueItem{}, err
	}
	return s.buildItem(ctx, queue, ad, nil)
}

func (s *Service) lookupAd(ctx context.Context, raw string) (model.Ad, error) {
	if idStr, ok := ExtractUUID(raw); ok {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return model.Ad{}, ErrNotFound
		}
		ad, err := s.ads.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgrepo.ErrAdNotFound) {
				return model.Ad{}, ErrNotFound
			}
			return model.Ad{}, err
		}
		return ad, nil
	}

	slug := ExtractSlug(raw)
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

func (s *Service) lookupEdited(ctx context.Context, raw string) (QueueItem, error) {
	if idStr, ok := ExtractUUID(raw); ok {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return QueueItem{}, ErrNotFound
		}

		request, err := s.requests.GetByID(ctx, id)
		if err == nil {
			ad, adErr := s.ads.GetByID(ctx, request.AdID)
			if adErr != nil {
				return QueueItem{}, fmt.Errorf("load ad for edit request: %w", adErr)
			}
			return s.buildItem(ctx, enums.QueueEdited, ad, &request)
		}
		if !errors.Is(err, pgrepo.ErrEditRequestNotFound) {
			return QueueItem{}, err
		}

		// Not a request id; try it as an ad id with a pending request.
		request, err = s.requests.LatestPendingByAd(ctx, id)
		if err != nil {
			if errors.Is(err, pgrepo.ErrEditRequestNotFound) {
				return QueueItem{}, ErrNotFound
			}
			return QueueItem{}, err
		}
		ad, adErr := s.ads.GetByID(ctx, request.AdID)
		if adErr != nil {
			return QueueItem{}, fmt.Errorf("load ad for edit request: %w", adErr)
		}
		return s.buildItem(ctx, enums.QueueEdited, ad, &request)
	}

	ad, err := s.lookupAd(ctx, raw)
	if err != nil {
		return QueueItem{}, err
	}
	request, err := s.requests.LatestPendingByAd(ctx, ad.ID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEditRequestNotFound) {
			return QueueItem{}, ErrNotFound
		}
		return QueueItem{}, err
	}
	return s.buildItem(ctx, enums.QueueEdited, ad, &request)
}

// SaveReview persists both form patches. The whole operation fails if either
// write fails. Expiry and legacy promotion fields are re-derived here on every
// save.
func (s *Service) SaveReview(ctx context.Context, adID uuid.UUID, adForm AdForm, profileForm ProfileForm) error {
	if adID == uuid.Nil {
		return ErrValidation
	}

	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load ad for review: %w", err)
	}

	patch := s.buildAdPatch(ad, adForm)
	if err := s.ads.UpdateReview(ctx, adID, patch); err != nil {
		return fmt.Errorf("save ad review: %w", err)
	}

	if err := s.profiles.UpdateReview(ctx, ad.UserID, pgrepo.ProfileReviewPatch{
		DisplayName:   profileForm.DisplayName,
		Email:         profileForm.Email,
		Phone:         profileForm.Phone,
		AltPhone:      profileForm.AltPhone,
		SellerType:    profileForm.SellerType,
		ShowPhone:     profileForm.ShowPhone,
		PhoneVerified: profileForm.PhoneVerified,
	}); err != nil {
		return fmt.Errorf("save profile review: %w", err)
	}

	return nil
}

// Approve saves the current form, publishes the ad and advances nothing by
// itself; callers re-poll the queue. Verification-queue approval is the same
// call (status was already approved, the flag clears).
func (s *Service) Approve(ctx context.Context, adID, reviewerID uuid.UUID, adForm AdForm, profileForm ProfileForm) error {
	if err := s.SaveReview(ctx, adID, adForm, profileForm); err != nil {
		return err
	}

	now := s.now().UTC()
	if err := s.ads.SetApproved(ctx, adID, reviewerID, now); err != nil {
		return fmt.Errorf("approve ad: %w", err)
	}

	s.writeAudit(ctx, adID, reviewerID, "ad_approved", nil)
	return nil
}

type RejectInput struct {
	Reasons      []string
	Message      string
	DuplicateRef string
}

// Reject requires at least one reason from the fixed taxonomy. The duplicate
// reference is resolved like a direct lookup; a self-reference is silently
// dropped.
func (s *Service) Reject(ctx context.Context, adID, reviewerID uuid.UUID, adForm AdForm, profileForm ProfileForm, input RejectInput) error {
	if len(input.Reasons) == 0 {
		return ErrValidation
	}
	for _, reason := range input.Reasons {
		if !IsAllowedRejectReason(reason) {
			return ErrValidation
		}
	}

	var duplicateOf *uuid.UUID
	if input.DuplicateRef != "" {
		dup, err := s.lookupAd(ctx, input.DuplicateRef)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err == nil && dup.ID != adID {
			duplicateOf = &dup.ID
		}
	}

	if err := s.SaveReview(ctx, adID, adForm, profileForm); err != nil {
		return err
	}

	now := s.now().UTC()
	if err := s.ads.SetRejected(ctx, adID, reviewerID, input.Reasons, input.Message, duplicateOf, now); err != nil {
		return fmt.Errorf("reject ad: %w", err)
	}

	s.writeAudit(ctx, adID, reviewerID, "ad_rejected", map[string]any{
		"reasons": input.Reasons,
	})
	return nil
}

// ApproveEdit persists the moderator's current form values onto the ad, then
// flips the request approved, stamping reviewer and time on both. The form is
// what gets committed, not a strict replay of the request's new values; the
// moderator may amend the request while approving.
func (s *Service) ApproveEdit(ctx context.Context, requestID, reviewerID uuid.UUID, adForm AdForm, profileForm ProfileForm) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEditRequestNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load edit request: %w", err)
	}

	if err := s.SaveReview(ctx, request.AdID, adForm, profileForm); err != nil {
		return err
	}

	now := s.now().UTC()
	if err := s.ads.SetApproved(ctx, request.AdID, reviewerID, now); err != nil {
		return fmt.Errorf("stamp ad after edit approval: %w", err)
	}
	if err := s.requests.SetApproved(ctx, requestID, reviewerID, now); err != nil {
		return fmt.Errorf("approve edit request: %w", err)
	}

	s.writeAudit(ctx, request.AdID, reviewerID, "edit_request_approved", map[string]any{
		"request_id": requestID.String(),
	})
	return nil
}

// RejectEdit flips the request only; the ad is left untouched.
func (s *Service) RejectEdit(ctx context.Context, requestID, reviewerID uuid.UUID, message string) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEditRequestNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load edit request: %w", err)
	}

	if err := s.requests.SetRejected(ctx, requestID, reviewerID, message, s.now().UTC()); err != nil {
		return fmt.Errorf("reject edit request: %w", err)
	}

	s.writeAudit(ctx, request.AdID, reviewerID, "edit_request_rejected", map[string]any{
		"request_id": requestID.String(),
	})
	return nil
}

func (s *Service) buildAdPatch(ad model.Ad, form AdForm) pgrepo.AdReviewPatch {
	promo := DerivePromotion(form.ProductTypes, ad.PromotionExpiresAt)

	expiresAt := ad.ExpiresAt
	if hasTag(form.Features, enums.FeatureNoExpiration) {
		expiresAt = nil
	} else if expiresAt == nil {
		fresh := s.now().UTC().AddDate(0, 0, s.expiryDays)
		expiresAt = &fresh
	}

	return pgrepo.AdReviewPatch{
		Title:         form.Title,
		Description:   form.Description,
		CategoryID:    form.CategoryID,
		SubcategoryID: form.SubcategoryID,
		CustomFields:  form.CustomFields,

		Price:     form.Price,
		PriceType: form.PriceType,
		MRP:       form.MRP,
		Discount:  form.Discount,

		AdType:       form.AdType,
		ProductTypes: form.ProductTypes,
		Features:     form.Features,

		Division: form.Division,
		District: form.District,
		Area:     form.Area,

		IsFeatured:         promo.IsFeatured,
		PromotionType:      promo.PromotionType,
		PromotionExpiresAt: promo.ExpiresAt,
		ExpiresAt:          expiresAt,
	}
}

func (s *Service) buildItem(ctx context.Context, queue enums.ModerationQueue, ad model.Ad, request *model.AdEditRequest) (QueueItem, error) {
	profile, err := s.profiles.GetByUserID(ctx, ad.UserID)
	if err != nil && !errors.Is(err, pgrepo.ErrProfileNotFound) {
		return QueueItem{}, fmt.Errorf("load owner profile: %w", err)
	}

	var imageURLs []string
	if s.images != nil {
		images, imgErr := s.images.ListByAd(ctx, ad.ID)
		if imgErr != nil {
			return QueueItem{}, fmt.Errorf("load ad images: %w", imgErr)
		}
		imageURLs = make([]string, 0, len(images))
		for _, img := range images {
			url := img.ObjectKey
			if s.signer != nil {
				signed, signErr := s.signer.PresignGet(ctx, img.ObjectKey, signedURLTTL)
				if signErr != nil {
					return QueueItem{}, fmt.Errorf("sign image url: %w", signErr)
				}
				url = signed
			}
			imageURLs = append(imageURLs, url)
		}
	}

	item := QueueItem{
		Queue:     queue,
		Ad:        ad,
		Profile:   profile,
		ImageURLs: imageURLs,
	}
	if request != nil {
		item.EditRequest = request
		item.Diff, item.DiffOverflow = DiffRows(request.OldValues, request.NewValues, s.diffRowCap)
	}

	return item, nil
}

func (s *Service) writeAudit(ctx context.Context, adID, actorID uuid.UUID, action string, details map[string]any) {
	if s.audits == nil {
		return
	}
	// Audit failure never undoes the decision.
	_ = s.audits.Create(ctx, model.AdAuditLog{
		AdID:    adID,
		ActorID: actorID,
		Action:  action,
		Details: details,
	})
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func mapQueueErr(err error) error {
	if errors.Is(err, pgrepo.ErrAdNotFound) || errors.Is(err, pgrepo.ErrEditRequestNotFound) {
		return ErrQueueEmpty
	}
	return err
}

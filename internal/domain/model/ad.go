package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

type Ad struct {
	ID            uuid.UUID      `json:"id"`
	Slug          string         `json:"slug"`
	UserID        uuid.UUID      `json:"user_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	CategoryID    *int64         `json:"category_id"`
	SubcategoryID *int64         `json:"subcategory_id"`
	CustomFields  map[string]any `json:"custom_fields"`

	Price     *float64        `json:"price"`
	PriceType enums.PriceType `json:"price_type"`
	MRP       *float64        `json:"mrp"`
	Discount  *float64        `json:"discount"`

	AdType       string   `json:"ad_type"`
	ProductTypes []string `json:"product_types"`
	Features     []string `json:"features"`

	Division string `json:"division"`
	District string `json:"district"`
	Area     string `json:"area"`

	Status            enums.AdStatus `json:"status"`
	NeedsVerification bool           `json:"needs_verification"`
	FirstTimePoster   bool           `json:"first_time_poster"`
	IsUnconfirmed     bool           `json:"is_unconfirmed"`
	IsDeactivated     bool           `json:"is_deactivated"`
	IsArchived        bool           `json:"is_archived"`
	PaymentStatus     string         `json:"payment_status"`

	RejectionReason  string     `json:"rejection_reason"`
	RejectionReasons []string   `json:"rejection_reasons"`
	RejectionMessage string     `json:"rejection_message"`
	DuplicateOfAdID  *uuid.UUID `json:"duplicate_of_ad_id"`

	LastReviewedBy *uuid.UUID `json:"last_reviewed_by"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`

	IsFeatured         bool                `json:"is_featured"`
	PromotionType      enums.PromotionType `json:"promotion_type"`
	PromotionExpiresAt *time.Time          `json:"promotion_expires_at"`
	ExpiresAt          *time.Time          `json:"expires_at"`

	ViewsCount int64     `json:"views_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AdImage belongs to exactly one ad, ordered by SortOrder. Immutable after
// submission except reordering.
type AdImage struct {
	ID        int64     `json:"id"`
	AdID      uuid.UUID `json:"ad_id"`
	ObjectKey string    `json:"object_key"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

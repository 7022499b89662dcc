package moderation

import (
	"time"

	"github.com/bazarhat/backend/internal/domain/enums"
)

// Promotion holds the legacy columns kept in sync with product_types so older
// read paths stay consistent.
type Promotion struct {
	IsFeatured    bool
	PromotionType enums.PromotionType
	ExpiresAt     *time.Time
}

// DerivePromotion recomputes the legacy promotion fields from the tag list.
// Pure function; the same inputs always yield the same result. Urgent wins
// over top ad, top ad over bump up. The current expiry is retained only while
// some promotion tag survives; once the tags are gone it is cleared so stale
// legacy reads cannot see a live promotion window.
func DerivePromotion(productTypes []string, currentExpiry *time.Time) Promotion {
	promo := Promotion{PromotionType: enums.PromotionNone}
	for _, tag := range productTypes {
		switch tag {
		case enums.ProductFeaturedAd:
			promo.IsFeatured = true
		case enums.ProductBumpUp:
			if promo.PromotionType == enums.PromotionNone {
				promo.PromotionType = enums.PromotionBumpUp
			}
		case enums.ProductTopAd:
			if promo.PromotionType != enums.PromotionUrgent {
				promo.PromotionType = enums.PromotionTopAd
			}
		case enums.ProductUrgent:
			promo.PromotionType = enums.PromotionUrgent
		}
	}
	if promo.IsFeatured || promo.PromotionType != enums.PromotionNone {
		promo.ExpiresAt = currentExpiry
	}
	return promo
}

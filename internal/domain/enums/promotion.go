package enums

// Product type tags attached to an ad. The legacy promotion columns
// (is_featured, promotion_type) are derived from these on every save so
// older read surfaces stay consistent.
const (
	ProductFeaturedAd = "Product_FEATURED_AD"
	ProductBumpUp     = "Product_BUMP_UP"
	ProductTopAd      = "Product_TOP_AD"
	ProductUrgent     = "Product_URGENT"
)

// Feature tags.
const (
	FeatureNoExpiration = "AdFeatures_NO_EXPIRATION"
)

type PromotionType string

const (
	PromotionNone   PromotionType = ""
	PromotionBumpUp PromotionType = "bump_up"
	PromotionTopAd  PromotionType = "top_ad"
	PromotionUrgent PromotionType = "urgent"
)

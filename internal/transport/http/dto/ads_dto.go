package dto

import (
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
)

// AdForm carries the seller-editable listing fields, shared by submit and
// edit requests.
type AdForm struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	CategoryID    *int64         `json:"category_id"`
	SubcategoryID *int64         `json:"subcategory_id"`
	CustomFields  map[string]any `json:"custom_fields"`

	Price     *float64 `json:"price"`
	PriceType string   `json:"price_type"`
	MRP       *float64 `json:"mrp"`
	Discount  *float64 `json:"discount"`

	AdType       string   `json:"ad_type"`
	ProductTypes []string `json:"product_types"`
	Features     []string `json:"features"`

	Division string `json:"division"`
	District string `json:"district"`
	Area     string `json:"area"`
}

type SubmitAdRequest struct {
	AdForm
	ImageKeys []string `json:"image_keys"`
}

type EditAdRequest struct {
	AdForm
}

type AdResponse struct {
	ID            string         `json:"id"`
	Slug          string         `json:"slug"`
	UserID        string         `json:"user_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	CategoryID    *int64         `json:"category_id"`
	SubcategoryID *int64         `json:"subcategory_id"`
	CustomFields  map[string]any `json:"custom_fields"`

	Price     *float64 `json:"price"`
	PriceType string   `json:"price_type"`
	MRP       *float64 `json:"mrp"`
	Discount  *float64 `json:"discount"`

	AdType       string   `json:"ad_type"`
	ProductTypes []string `json:"product_types"`
	Features     []string `json:"features"`

	Division string `json:"division"`
	District string `json:"district"`
	Area     string `json:"area"`

	Status        string `json:"status"`
	IsFeatured    bool   `json:"is_featured"`
	PromotionType string `json:"promotion_type,omitempty"`

	ExpiresAt  *time.Time `json:"expires_at"`
	ViewsCount int64      `json:"views_count"`
	CreatedAt  time.Time  `json:"created_at"`

	ImageURLs []string `json:"image_urls,omitempty"`
}

func NewAdResponse(ad model.Ad) AdResponse {
	return AdResponse{
		ID:            ad.ID.String(),
		Slug:          ad.Slug,
		UserID:        ad.UserID.String(),
		Title:         ad.Title,
		Description:   ad.Description,
		CategoryID:    ad.CategoryID,
		SubcategoryID: ad.SubcategoryID,
		CustomFields:  ad.CustomFields,
		Price:         ad.Price,
		PriceType:     string(ad.PriceType),
		MRP:           ad.MRP,
		Discount:      ad.Discount,
		AdType:        ad.AdType,
		ProductTypes:  ad.ProductTypes,
		Features:      ad.Features,
		Division:      ad.Division,
		District:      ad.District,
		Area:          ad.Area,
		Status:        string(ad.Status),
		IsFeatured:    ad.IsFeatured,
		PromotionType: string(ad.PromotionType),
		ExpiresAt:     ad.ExpiresAt,
		ViewsCount:    ad.ViewsCount,
		CreatedAt:     ad.CreatedAt,
	}
}

func NewAdResponses(ads []model.Ad) []AdResponse {
	out := make([]AdResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, NewAdResponse(ad))
	}
	return out
}

type AdListResponse struct {
	Ads   []AdResponse `json:"ads"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
}

type EditAdResponse struct {
	Direct    bool   `json:"direct"`
	RequestID string `json:"request_id,omitempty"`
}

// UploadImagesResponse returns the object keys for freshly uploaded ad
// images. AdRef is the grouping id the keys were stored under; for uploads
// made before the ad exists it is a draft id the client passes back on
// submit.
type UploadImagesResponse struct {
	AdRef string   `json:"ad_ref"`
	Keys  []string `json:"keys"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

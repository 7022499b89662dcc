package dto

import (
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
)

type FavoriteResponse struct {
	AdID      string    `json:"ad_id"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

func NewFavoriteListResponse(favorites []model.Favorite) FavoriteListResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, FavoriteResponse{AdID: f.AdID.String(), CreatedAt: f.CreatedAt})
	}
	return FavoriteListResponse{Favorites: out}
}

type SaveSearchRequest struct {
	Name  string         `json:"name"`
	Query map[string]any `json:"query"`
}

type SavedSearchResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Query     map[string]any `json:"query"`
	CreatedAt time.Time      `json:"created_at"`
}

type SavedSearchListResponse struct {
	Searches []SavedSearchResponse `json:"searches"`
}

func NewSavedSearchListResponse(searches []model.SavedSearch) SavedSearchListResponse {
	out := make([]SavedSearchResponse, 0, len(searches))
	for _, s := range searches {
		out = append(out, SavedSearchResponse{ID: s.ID, Name: s.Name, Query: s.Query, CreatedAt: s.CreatedAt})
	}
	return SavedSearchListResponse{Searches: out}
}

type StartConversationRequest struct {
	Body string `json:"body"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type ConversationResponse struct {
	ID        string    `json:"id"`
	AdID      string    `json:"ad_id"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  string    `json:"seller_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewConversationResponse(c model.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        c.ID.String(),
		AdID:      c.AdID.String(),
		BuyerID:   c.BuyerID.String(),
		SellerID:  c.SellerID.String(),
		UpdatedAt: c.UpdatedAt,
	}
}

type MessageResponse struct {
	ID        int64     `json:"id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID.String(),
		Body:      m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func NewMessageResponses(messages []model.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

type StartConversationResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Message      MessageResponse      `json:"message"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type DivisionResponse struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

type DivisionListResponse struct {
	Divisions []DivisionResponse `json:"divisions"`
}

type ReportReasonResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type ReportAdRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

func NewCategoryResponses(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{
			ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon,
			SortOrder: c.SortOrder, IsActive: c.IsActive,
		})
	}
	return out
}

type SubcategoryResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	SortOrder  int    `json:"sort_order"`
	IsActive   bool   `json:"is_active"`
}

func NewSubcategoryResponses(subs []model.Subcategory) []SubcategoryResponse {
	out := make([]SubcategoryResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubcategoryResponse{
			ID: s.ID, CategoryID: s.CategoryID, Name: s.Name, Slug: s.Slug,
			SortOrder: s.SortOrder, IsActive: s.IsActive,
		})
	}
	return out
}

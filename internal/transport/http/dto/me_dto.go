package dto

import (
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
)

type MeResponse struct {
	UserID             string    `json:"user_id"`
	DisplayName        string    `json:"display_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	AltPhone           string    `json:"alt_phone"`
	SellerType         string    `json:"seller_type"`
	ShowPhone          bool      `json:"show_phone"`
	PhoneVerified      bool      `json:"phone_verified"`
	VerificationStatus string    `json:"verification_status"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewMeResponse(profile model.Profile, avatarURL string) MeResponse {
	return MeResponse{
		UserID:             profile.UserID.String(),
		DisplayName:        profile.DisplayName,
		Email:              profile.Email,
		Phone:              profile.Phone,
		AltPhone:           profile.AltPhone,
		SellerType:         profile.SellerType,
		ShowPhone:          profile.ShowPhone,
		PhoneVerified:      profile.PhoneVerified,
		VerificationStatus: string(profile.VerificationStatus),
		AvatarURL:          avatarURL,
		CreatedAt:          profile.CreatedAt,
	}
}

type UpdateMeRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	AltPhone    string `json:"alt_phone"`
	SellerType  string `json:"seller_type"`
	ShowPhone   bool   `json:"show_phone"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

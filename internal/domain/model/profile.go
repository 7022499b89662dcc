package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

type Profile struct {
	UserID             uuid.UUID                `json:"user_id"`
	DisplayName        string                   `json:"display_name"`
	Email              string                   `json:"email"`
	Phone              string                   `json:"phone"`
	AltPhone           string                   `json:"alt_phone"`
	SellerType         string                   `json:"seller_type"`
	ShowPhone          bool                     `json:"show_phone"`
	PhoneVerified      bool                     `json:"phone_verified"`
	VerificationStatus enums.VerificationStatus `json:"verification_status"`
	AvatarKey          string                   `json:"avatar_key"`
	IsBlocked          bool                     `json:"is_blocked"`
	IsDeleted          bool                     `json:"is_deleted"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

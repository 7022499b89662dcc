package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

// AdEditRequest is a proposed change-set against an approved ad. OldValues and
// NewValues snapshot the ad's editable fields at submission time. The terminal
// state is set exactly once by an admin.
type AdEditRequest struct {
	ID              uuid.UUID               `json:"id"`
	AdID            uuid.UUID               `json:"ad_id"`
	UserID          uuid.UUID               `json:"user_id"`
	OldValues       map[string]any          `json:"old_values"`
	NewValues       map[string]any          `json:"new_values"`
	Status          enums.EditRequestStatus `json:"status"`
	ReviewerMessage string                  `json:"reviewer_message"`
	ReviewedBy      *uuid.UUID              `json:"reviewed_by"`
	ReviewedAt      *time.Time              `json:"reviewed_at"`
	CreatedAt       time.Time               `json:"created_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	AdID      uuid.UUID `json:"ad_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SavedSearch struct {
	ID        int64          `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Name      string         `json:"name"`
	Query     map[string]any `json:"query"`
	CreatedAt time.Time      `json:"created_at"`
}

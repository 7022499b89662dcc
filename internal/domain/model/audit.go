package model

import (
	"time"

	"github.com/google/uuid"
)

// AdAuditLog records one admin action against one ad.
type AdAuditLog struct {
	ID        int64          `json:"id"`
	AdID      uuid.UUID      `json:"ad_id"`
	ActorID   uuid.UUID      `json:"actor_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

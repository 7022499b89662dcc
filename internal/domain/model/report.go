package model

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	ID         int64      `json:"id"`
	AdID       uuid.UUID  `json:"ad_id"`
	ReporterID uuid.UUID  `json:"reporter_id"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details"`
	IsResolved bool       `json:"is_resolved"`
	ResolvedBy *uuid.UUID `json:"resolved_by"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

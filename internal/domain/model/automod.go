package model

import "time"

// AutoModerationSetting is a single admin-tunable switch for the submission
// pipeline, keyed by name.
type AutoModerationSetting struct {
	Key       string    `json:"key"`
	Enabled   bool      `json:"enabled"`
	Threshold int       `json:"threshold"`
	UpdatedAt time.Time `json:"updated_at"`
}

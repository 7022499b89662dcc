package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// APIError is the JSON body every non-2xx response carries; Code is a stable
// machine key (VALIDATION_ERROR, AD_NOT_FOUND, ...) and Message is for humans.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RateLimitError is the 429 body for posting limits; RetryAfterSec tells the
// client when the next submission may succeed.
type RateLimitError struct {
	Code          string     `json:"code"`
	Message       string     `json:"message"`
	RetryAfterSec int64      `json:"retry_after_sec"`
	CooldownUntil *time.Time `json:"cooldown_until"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

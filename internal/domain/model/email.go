package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

type EmailItem struct {
	ID           int64            `json:"id"`
	Recipient    string           `json:"recipient"`
	Subject      string           `json:"subject"`
	Body         string           `json:"body"`
	CurrentState enums.EmailState `json:"current_state"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// EmailEvent is an immutable append-only log entry tied to an EmailItem.
type EmailEvent struct {
	ID          int64                `json:"id"`
	EmailItemID int64                `json:"email_item_id"`
	EventType   enums.EmailEventType `json:"event_type"`
	ActorID     *uuid.UUID           `json:"actor_id"`
	CreatedAt   time.Time            `json:"created_at"`
}

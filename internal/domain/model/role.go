package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

type UserRole struct {
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UserPermission struct {
	UserID     uuid.UUID        `json:"user_id"`
	Permission enums.Permission `json:"permission"`
	GrantedBy  *uuid.UUID       `json:"granted_by"`
	CreatedAt  time.Time        `json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session backs authentication. SID is a digest of the bearer token, never
// the token itself. Expired rows are authoritative regardless of cache state.
type Session struct {
	SID       string         `gorm:"column:sid;type:varchar(128);primaryKey" json:"sid"`
	Payload   datatypes.JSON `gorm:"type:json;not null"           json:"payload"`
	ExpiresAt time.Time      `gorm:"not null;index"               json:"expiresAt"`
	CreatedAt time.Time      `gorm:"autoCreateTime"               json:"createdAt"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionPayload is the structured part of the session blob this application
// reads; the rest of the payload is opaque to it.
type SessionPayload struct {
	UserID string `json:"userId"`
}

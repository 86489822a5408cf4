package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ServiceAppleHealth = "apple_health"
	ServiceGoogleFit   = "google_fit"
	ServiceFitbit      = "fitbit"
	ServiceStrava      = "strava"
)

// ConnectedService tracks one integration per user. The (user_id,
// service_name) pair is unique so connect/disconnect is an upsert, never a
// second row.
type ConnectedService struct {
	BaseUUIDModel
	UserID      string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_service" json:"userId"`
	User        *User          `gorm:"foreignKey:UserID"                                      json:"-"`
	ServiceName string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_service" json:"serviceName"`
	IsConnected bool           `gorm:"not null;default:false"                                 json:"isConnected"`
	LastSynced  *time.Time     `json:"lastSynced"`
	AuthData    datatypes.JSON `gorm:"type:json"                                              json:"authData,omitempty"`
}

// ConnectServiceRequest is the insert shape for connecting an integration.
// IsConnected and LastSynced are owned by the sync collaborator.
type ConnectServiceRequest struct {
	UserID      string         `json:"userId"`
	ServiceName string         `json:"serviceName"`
	AuthData    datatypes.JSON `json:"authData"`
}

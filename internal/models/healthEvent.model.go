package models

import "time"

// HealthEvent is calendar metadata: appointments, reminders. Only the date is
// required; time and location are optional.
type HealthEvent struct {
	BaseUUIDModel
	UserID      string    `gorm:"type:varchar(64);not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID"               json:"-"`
	Title       string    `gorm:"type:varchar(255);not null"      json:"title"`
	Description *string   `gorm:"type:text"                       json:"description"`
	Date        time.Time `gorm:"not null;index"                  json:"date"`
	Time        *string   `gorm:"type:varchar(16)"                json:"time"`
	Location    *string   `gorm:"type:varchar(255)"               json:"location"`
}

type CreateHealthEventRequest struct {
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Time        *string   `json:"time"`
	Location    *string   `json:"location"`
}

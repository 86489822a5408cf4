package models

import (
	"time"

	"gorm.io/datatypes"
)

// Lab result statuses. A result starts pending and is transitioned exactly
// once by marker extraction; it never reverts to pending.
const (
	LabResultStatusPending  = "pending"
	LabResultStatusNormal   = "normal"
	LabResultStatusReview   = "review"
	LabResultStatusAbnormal = "abnormal"
)

type LabResult struct {
	BaseUUIDModel
	UserID      string            `gorm:"type:varchar(64);not null;index"           json:"userId"`
	User        *User             `gorm:"foreignKey:UserID"                         json:"-"`
	Title       string            `gorm:"type:varchar(255);not null"                json:"title"`
	Description *string           `gorm:"type:text"                                 json:"description"`
	FileURL     *string           `gorm:"type:varchar(1024)"                        json:"fileUrl"`
	UploadedAt  time.Time         `gorm:"autoCreateTime"                            json:"uploadedAt"`
	ResultDate  *time.Time        `json:"resultDate"`
	Status      string            `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Payload     datatypes.JSON    `gorm:"type:json"                                 json:"payload"`
	Processed   bool              `gorm:"not null;default:false"                    json:"processed"`
	Markers     []BloodworkMarker `gorm:"foreignKey:LabResultID;constraint:OnDelete:CASCADE" json:"markers,omitempty"`
}

// CreateLabResultRequest is the insert shape. Status and Processed are
// server-owned (extraction transitions them) and cannot arrive from a client.
type CreateLabResultRequest struct {
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	FileURL     *string        `json:"fileUrl"`
	ResultDate  *time.Time     `json:"resultDate"`
	Payload     datatypes.JSON `json:"payload"`
}

func ValidLabResultStatus(status string) bool {
	switch status {
	case LabResultStatusPending, LabResultStatusNormal,
		LabResultStatusReview, LabResultStatusAbnormal:
		return true
	}
	return false
}

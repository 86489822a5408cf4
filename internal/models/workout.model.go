package models

import "time"

type Workout struct {
	BaseUUIDModel
	UserID              string       `gorm:"type:varchar(64);not null;index" json:"userId"`
	User                *User        `gorm:"foreignKey:UserID"               json:"-"`
	Title               string       `gorm:"type:varchar(255);not null"      json:"title"`
	Description         *string      `gorm:"type:text"                       json:"description"`
	Date                time.Time    `gorm:"not null;index"                  json:"date"`
	StartTime           *string      `gorm:"type:varchar(16)"                json:"startTime"`
	EndTime             *string      `gorm:"type:varchar(16)"                json:"endTime"`
	ActivityType        string       `gorm:"type:varchar(64);not null"       json:"activityType"`
	PlannedDistance     *float64     `json:"plannedDistance"`
	ActualDistance      *float64     `json:"actualDistance"`
	PlannedDuration     *int         `json:"plannedDuration"` // minutes
	ActualDuration      *int         `json:"actualDuration"`  // minutes
	Intensity           *string      `gorm:"type:varchar(32)"                json:"intensity"`
	FeelingScore        *int         `json:"feelingScore"` // 1-10 by convention
	Notes               *string      `gorm:"type:text"                       json:"notes"`
	IsCompleted         bool         `gorm:"not null;default:false"          json:"isCompleted"`
	IsRecurring         bool         `gorm:"not null;default:false"          json:"isRecurring"`
	RecurrenceRule      *string      `gorm:"type:varchar(255)"               json:"recurrenceRule"`
	RecurrenceEndDate   *time.Time   `json:"recurrenceEndDate"`
	TrainingStressScore *float64     `json:"trainingStressScore"`
	CaloriesBurned      *int         `json:"caloriesBurned"`
	AvgHeartRate        *int         `json:"avgHeartRate"`
	MaxHeartRate        *int         `json:"maxHeartRate"`
	Sets                []WorkoutSet `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"sets,omitempty"`
}

// CreateWorkoutRequest is the insert shape. TrainingStressScore is computed
// server-side from duration and intensity; IsCompleted transitions later.
type CreateWorkoutRequest struct {
	UserID            string                    `json:"userId"`
	Title             string                    `json:"title"`
	Description       *string                   `json:"description"`
	Date              time.Time                 `json:"date"`
	StartTime         *string                   `json:"startTime"`
	EndTime           *string                   `json:"endTime"`
	ActivityType      string                    `json:"activityType"`
	PlannedDistance   *float64                  `json:"plannedDistance"`
	ActualDistance    *float64                  `json:"actualDistance"`
	PlannedDuration   *int                      `json:"plannedDuration"`
	ActualDuration    *int                      `json:"actualDuration"`
	Intensity         *string                   `json:"intensity"`
	FeelingScore      *int                      `json:"feelingScore"`
	Notes             *string                   `json:"notes"`
	IsRecurring       bool                      `json:"isRecurring"`
	RecurrenceRule    *string                   `json:"recurrenceRule"`
	RecurrenceEndDate *time.Time                `json:"recurrenceEndDate"`
	CaloriesBurned    *int                      `json:"caloriesBurned"`
	AvgHeartRate      *int                      `json:"avgHeartRate"`
	MaxHeartRate      *int                      `json:"maxHeartRate"`
	Sets              []CreateWorkoutSetRequest `json:"sets"`
}

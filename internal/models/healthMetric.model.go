package models

import "time"

const (
	MetricSourceManual      = "manual"
	MetricSourceAppleHealth = "apple_health"
	MetricSourceGoogleFit   = "google_fit"
	MetricSourceFitbit      = "fitbit"
)

// HealthMetric is one day of aggregated data for a user. All measurements are
// nullable: a row with only steps, or only sleep, is valid partial data.
// One row per user per day is a convention, not a constraint.
type HealthMetric struct {
	BaseUUIDModel
	UserID            string    `gorm:"type:varchar(64);not null;index"          json:"userId"`
	User              *User     `gorm:"foreignKey:UserID"                        json:"-"`
	Date              time.Time `gorm:"not null;index"                           json:"date"`
	Steps             *int      `json:"steps"`
	CaloriesBurned    *int      `json:"caloriesBurned"`
	RestingHeartRate  *int      `json:"restingHeartRate"`
	ActiveMinutes     *int      `json:"activeMinutes"`
	Weight            *float64  `json:"weight"`
	SleepMinutes      *int      `json:"sleepMinutes"`
	DeepSleepMinutes  *int      `json:"deepSleepMinutes"`
	LightSleepMinutes *int      `json:"lightSleepMinutes"`
	ProteinGrams      *int      `json:"proteinGrams"`
	CarbsGrams        *int      `json:"carbsGrams"`
	FatsGrams         *int      `json:"fatsGrams"`
	Source            string    `gorm:"type:varchar(32);not null;default:manual" json:"source"`
}

type CreateHealthMetricRequest struct {
	UserID            string    `json:"userId"`
	Date              time.Time `json:"date"`
	Steps             *int      `json:"steps"`
	CaloriesBurned    *int      `json:"caloriesBurned"`
	RestingHeartRate  *int      `json:"restingHeartRate"`
	ActiveMinutes     *int      `json:"activeMinutes"`
	Weight            *float64  `json:"weight"`
	SleepMinutes      *int      `json:"sleepMinutes"`
	DeepSleepMinutes  *int      `json:"deepSleepMinutes"`
	LightSleepMinutes *int      `json:"lightSleepMinutes"`
	ProteinGrams      *int      `json:"proteinGrams"`
	CarbsGrams        *int      `json:"carbsGrams"`
	FatsGrams         *int      `json:"fatsGrams"`
	Source            string    `json:"source"`
}

func ValidMetricSource(source string) bool {
	switch source {
	case MetricSourceManual, MetricSourceAppleHealth,
		MetricSourceGoogleFit, MetricSourceFitbit:
		return true
	}
	return false
}

package models

// WorkoutSet is one set within a workout; SetNumber orders sets.
type WorkoutSet struct {
	BaseUUIDModel
	WorkoutID    string   `gorm:"type:varchar(64);not null;index" json:"workoutId"`
	ExerciseName string   `gorm:"type:varchar(255);not null"      json:"exerciseName"`
	SetNumber    int      `gorm:"not null"                        json:"setNumber"`
	Weight       *float64 `json:"weight"`
	Reps         *int     `json:"reps"`
	Duration     *int     `json:"duration"` // seconds
	RestTime     *int     `json:"restTime"` // seconds
	Notes        *string  `gorm:"type:text"                       json:"notes"`
}

type CreateWorkoutSetRequest struct {
	ExerciseName string   `json:"exerciseName"`
	SetNumber    int      `json:"setNumber"`
	Weight       *float64 `json:"weight"`
	Reps         *int     `json:"reps"`
	Duration     *int     `json:"duration"`
	RestTime     *int     `json:"restTime"`
	Notes        *string  `json:"notes"`
}

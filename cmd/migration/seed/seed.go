package seed

import (
	"time"

	"healthdash/config"
	"healthdash/internal/logger"
	. "healthdash/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			ID:        "user_seed_demo",
			Email:     stringPtr("demo@example.com"),
			FirstName: stringPtr("Demo"),
			LastName:  stringPtr("User"),
		}, {
			ID:        "user_seed_ada",
			Email:     stringPtr("ada.lovelace@example.com"),
			FirstName: stringPtr("Ada"),
			LastName:  stringPtr("Lovelace"),
		},
	}

	for _, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "id = ?", user.ID).Error; err == nil {
			log.Info("User already exists", "user", user.ID)
			continue
		}
		log.Info("Seeding user", "user", user.ID)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "user", user.ID)
		}
	}

	if err := seedMetrics(db, log); err != nil {
		return err
	}

	return seedEvents(db, log)
}

func seedMetrics(db *gorm.DB, log logger.Logger) error {
	var count int64
	if err := db.Model(&HealthMetric{}).Where("user_id = ?", "user_seed_demo").Count(&count).Error; err != nil {
		return log.Err("failed to count seed metrics", err)
	}
	if count > 0 {
		log.Info("Metrics already seeded")
		return nil
	}

	today := time.Now().Truncate(24 * time.Hour)
	metrics := []HealthMetric{
		{
			UserID:         "user_seed_demo",
			Date:           today.AddDate(0, 0, -2),
			Steps:          intPtr(8412),
			CaloriesBurned: intPtr(2250),
			SleepMinutes:   intPtr(432),
			Weight:         floatPtr(81.4),
		}, {
			UserID:           "user_seed_demo",
			Date:             today.AddDate(0, 0, -1),
			Steps:            intPtr(11203),
			RestingHeartRate: intPtr(54),
			ActiveMinutes:    intPtr(67),
		}, {
			UserID:       "user_seed_demo",
			Date:         today,
			SleepMinutes: intPtr(389),
		},
	}

	for _, metric := range metrics {
		log.Info("Seeding metric", "date", metric.Date)
		if err := db.Create(&metric).Error; err != nil {
			log.Er("failed to create metric", err, "date", metric.Date)
		}
	}

	return nil
}

func seedEvents(db *gorm.DB, log logger.Logger) error {
	var count int64
	if err := db.Model(&HealthEvent{}).Where("user_id = ?", "user_seed_demo").Count(&count).Error; err != nil {
		return log.Err("failed to count seed events", err)
	}
	if count > 0 {
		log.Info("Events already seeded")
		return nil
	}

	today := time.Now().Truncate(24 * time.Hour)
	events := []HealthEvent{
		{
			UserID: "user_seed_demo",
			Title:  "Annual physical",
			Date:   today.AddDate(0, 0, 7),
			Time:   stringPtr("09:30"),
		}, {
			UserID:      "user_seed_demo",
			Title:       "Bloodwork draw",
			Description: stringPtr("Fasting panel, no food after midnight"),
			Date:        today.AddDate(0, 0, 14),
			Location:    stringPtr("Downtown lab"),
		},
	}

	for _, event := range events {
		log.Info("Seeding event", "title", event.Title)
		if err := db.Create(&event).Error; err != nil {
			log.Er("failed to create event", err, "title", event.Title)
		}
	}

	return nil
}

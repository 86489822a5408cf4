package database

import (
	. "healthdash/internal/models"

	migrate "github.com/rubenv/sql-migrate"
)

// sessionMigrations manages the sessions table with plain SQL: the table
// layout is dictated by the auth collaborator, so it is not AutoMigrate-owned.
var sessionMigrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_create_sessions",
			Up: []string{
				`CREATE TABLE IF NOT EXISTS sessions (
					sid        VARCHAR(128) PRIMARY KEY,
					payload    JSON NOT NULL,
					expires_at DATETIME NOT NULL,
					created_at DATETIME
				)`,
				`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at)`,
			},
			Down: []string{
				`DROP TABLE sessions`,
			},
		},
	},
}

// Migrate brings the schema up to date: entity tables through GORM,
// the sessions table through sql-migrate.
func (s *DB) Migrate() error {
	log := s.log.Function("Migrate")

	if err := s.SQL.AutoMigrate(
		&User{},
		&LabResult{},
		&BloodworkMarker{},
		&HealthMetric{},
		&AiInsight{},
		&HealthEvent{},
		&ConnectedService{},
		&Workout{},
		&WorkoutSet{},
	); err != nil {
		return log.Err("failed to migrate entity tables", err)
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return log.Err("failed to get database handle", err)
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", sessionMigrations, migrate.Up)
	if err != nil {
		return log.Err("failed to run session migrations", err)
	}

	log.Info("Schema migration complete", "sessionMigrationsApplied", applied)
	return nil
}

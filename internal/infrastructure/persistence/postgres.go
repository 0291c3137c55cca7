package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"flightchange-service/internal/interface/repository"
)

// NewPostgresDB creates a new GORM database handle for PostgreSQL
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all record store tables.
// Invoked once before first use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.Routes{},
		&repository.Flights{},
		&repository.Subscriptions{},
	)
}

package database

import (
	"log"

	"github.com/campus-rooms/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Session{},
		&models.Room{},
		&models.Booking{},
		&models.AutoApprovalRule{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	ApplyBookingConstraints(db)

	return db
}

// ApplyBookingConstraints installs the overlap-exclusion constraint: among
// bookings for the same room that are neither cancelled nor rejected, no two
// time ranges may overlap. Inserts that lose a race against a concurrent
// booking fail here with SQLSTATE 23P01.
func ApplyBookingConstraints(db *gorm.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings
				ADD CONSTRAINT bookings_room_time_excl
				EXCLUDE USING gist (
					room_id WITH =,
					tstzrange(start_time, end_time) WITH &&
				)
				WHERE (status NOT IN ('cancelled', 'rejected'));
		EXCEPTION
			WHEN duplicate_object THEN NULL;
			WHEN duplicate_table THEN NULL;
		END $$
	`)
}

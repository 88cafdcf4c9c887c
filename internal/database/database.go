package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" database/sql driver used below.
	_ "modernc.org/sqlite"

	"musicstudio/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema and, on Postgres, the exclusion constraint that
// rejects overlapping non-cancelled bookings for a room at the storage layer.
// The in-memory conflict check and the insert are separate statements, so the
// constraint is what actually closes the check-then-act window under
// concurrent load.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.Instructor{},
		&domain.Booking{},
		&domain.CancellationPolicy{},
		&domain.CheckIn{},
		&domain.PaymentEvent{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS idx_no_overbooking`,
		// int4range is half-open by default, matching the [start,end) overlap rule:
		// bookings that merely touch at a boundary do not collide.
		`ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
			EXCLUDE USING gist (
				room_id WITH =,
				booking_date WITH =,
				int4range(start_minutes, end_minutes) WITH &&
			) WHERE (status <> 'cancelled')`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

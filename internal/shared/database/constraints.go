package database

import (
	"venuebook/pkg/logger"

	"gorm.io/gorm"
)

type constraint struct {
	name string
	sql  string
}

// bookingConstraints back the service-level conflict check at the storage layer.
// no_overlapping_bookings rejects a second non-canceled booking sharing a calendar
// day with another on the same venue; inserts violating it fail with SQLSTATE 23P01.
var bookingConstraints = []constraint{
	{"btree_gist", `CREATE EXTENSION IF NOT EXISTS btree_gist`},
	{"no_overlapping_bookings", `
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'no_overlapping_bookings') THEN
				ALTER TABLE bookings
				ADD CONSTRAINT no_overlapping_bookings
				EXCLUDE USING gist (
					venue_id WITH =,
					daterange(start_time::date, end_time::date, '[]') WITH &&
				) WHERE (status <> 'Canceled');
			END IF;
		END $$;
	`},
	{"idx_bookings_venue_status", `
		CREATE INDEX IF NOT EXISTS idx_bookings_venue_status
		ON bookings (venue_id, status);
	`},
	{"idx_bookings_user_created", `
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`},
	{"idx_venue_packages_active_price", `
		CREATE INDEX IF NOT EXISTS idx_venue_packages_active_price
		ON venue_packages (base_price) WHERE is_active;
	`},
}

// MigrateConstraints applies the raw SQL constraints and indexes. Failures are
// logged and skipped; the row lock taken during booking still prevents overlaps.
func MigrateConstraints(db *gorm.DB, log *logger.Logger) {
	for _, c := range bookingConstraints {
		if err := db.Exec(c.sql).Error; err != nil {
			log.Error("failed to apply constraint", "name", c.name, "error", err)
		}
	}
}

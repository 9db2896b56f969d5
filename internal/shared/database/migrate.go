package database

import (
	"venuebook/internal/bookings"
	"venuebook/internal/packages"
	"venuebook/internal/users"
	"venuebook/internal/venues"

	"gorm.io/gorm"
)

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		&users.User{},
		&venues.Venue{},
		&venues.VenueImage{},
		&venues.AdditionalService{},
		&packages.VenuePackage{},
		&packages.PackageService{},
		&bookings.Booking{},
		&bookings.BookingAdditionalService{},
		&bookings.BookingPackageService{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

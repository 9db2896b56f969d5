package bookings

import (
	"github.com/google/uuid"
)

// CreateBookingRequest carries a booking attempt. Times are parsed by ParseTimestamp.
type CreateBookingRequest struct {
	VenueID   uuid.UUID  `json:"venue_id" validate:"required"`
	PackageID *uuid.UUID `json:"package_id"`
	// UserID lets an admin book on behalf of someone else
	UserID    *uuid.UUID `json:"user_id"`
	StartTime string     `json:"start_time" validate:"required"`

	// DurationHours is used only when neither an override nor a package supplies one
	DurationHours         *int `json:"duration_hours" validate:"omitempty,min=1,max=365"`
	ModifiedCapacity      *int `json:"modified_capacity" validate:"omitempty,min=1"`
	ModifiedDurationHours *int `json:"modified_duration_hours" validate:"omitempty,min=1,max=365"`

	AdditionalServiceIDs []uuid.UUID `json:"additional_service_ids"`
	PackageServiceIDs    []uuid.UUID `json:"package_service_ids"`

	IsCustomPackage   bool   `json:"is_custom_package"`
	CustomPackageName string `json:"custom_package_name" validate:"max=200"`
}

type AvailabilityQuery struct {
	StartTime string  `form:"start_time" binding:"required"`
	Duration  float64 `form:"duration"`
}

type DateRangeQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

package bookings

import (
	"time"

	"venuebook/internal/packages"
	"venuebook/internal/users"
	"venuebook/internal/venues"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCanceled  Status = "Canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsActive reports whether a booking in this status still holds its dates
func (s Status) IsActive() bool {
	return s != StatusCanceled
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
	PaymentCanceled  PaymentStatus = "Canceled"
)

// Booking reserves a venue for a whole-day range. Start and end are naive UTC wall-clock times.
type Booking struct {
	ID        uuid.UUID              `json:"id" gorm:"type:uuid;primaryKey"`
	VenueID   uuid.UUID              `json:"venue_id" gorm:"type:uuid;not null;index"`
	Venue     *venues.Venue          `json:"venue,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:RESTRICT"`
	PackageID *uuid.UUID             `json:"package_id,omitempty" gorm:"type:uuid;index"`
	Package   *packages.VenuePackage `json:"package,omitempty" gorm:"foreignKey:PackageID;constraint:OnDelete:RESTRICT"`
	UserID    uuid.UUID              `json:"user_id" gorm:"type:uuid;not null;index"`
	User      *users.User            `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`

	StartTime time.Time `json:"start_time" gorm:"type:timestamp;not null;index:idx_bookings_time_range,priority:1"`
	EndTime   time.Time `json:"end_time" gorm:"type:timestamp;not null;index:idx_bookings_time_range,priority:2;check:chk_bookings_time_order,end_time > start_time"`

	IsCustomPackage       bool   `json:"is_custom_package" gorm:"not null;default:false"`
	CustomPackageName     string `json:"custom_package_name" gorm:"size:200"`
	ModifiedCapacity      *int   `json:"modified_capacity,omitempty"`
	ModifiedDurationHours *int   `json:"modified_duration_hours,omitempty"`

	BasePackageCost        decimal.Decimal `json:"base_package_cost" gorm:"type:numeric(18,2);not null;default:0"`
	CapacityExtensionCost  decimal.Decimal `json:"capacity_extension_cost" gorm:"type:numeric(18,2);not null;default:0"`
	DurationExtensionCost  decimal.Decimal `json:"duration_extension_cost" gorm:"type:numeric(18,2);not null;default:0"`
	AdditionalServicesCost decimal.Decimal `json:"additional_services_cost" gorm:"type:numeric(18,2);not null;default:0"`
	TotalCost              decimal.Decimal `json:"total_cost" gorm:"type:numeric(18,2);not null;default:0;check:chk_bookings_total_cost,total_cost >= 0"`

	Status        Status        `json:"status" gorm:"size:20;not null;index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"size:20;not null"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	AdditionalServices []BookingAdditionalService `json:"additional_services,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	PackageServices    []BookingPackageService    `json:"package_services,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingAdditionalService freezes the name and price of a venue service at booking time.
// It holds no foreign key to the catalog row, which may later change or disappear.
type BookingAdditionalService struct {
	ID                  uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID           uuid.UUID       `json:"booking_id" gorm:"type:uuid;not null;index"`
	AdditionalServiceID uuid.UUID       `json:"additional_service_id" gorm:"type:uuid;not null;index"`
	ServiceName         string          `json:"service_name" gorm:"size:200;not null"`
	PriceAtBooking      decimal.Decimal `json:"price_at_booking" gorm:"type:numeric(18,2);not null"`
	Quantity            int             `json:"quantity" gorm:"not null;default:1"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (s *BookingAdditionalService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (BookingAdditionalService) TableName() string {
	return "booking_additional_services"
}

// BookingPackageService freezes the name and price of a package service at booking time
type BookingPackageService struct {
	ID                  uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID           uuid.UUID       `json:"booking_id" gorm:"type:uuid;not null;index"`
	PackageServiceID    uuid.UUID       `json:"package_service_id" gorm:"type:uuid;not null;index"`
	ServiceName         string          `json:"service_name" gorm:"size:200;not null"`
	PriceAtBooking      decimal.Decimal `json:"price_at_booking" gorm:"type:numeric(18,2);not null"`
	Quantity            int             `json:"quantity" gorm:"not null;default:1"`
	IsIncludedInPackage bool            `json:"is_included_in_package"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (s *BookingPackageService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (BookingPackageService) TableName() string {
	return "booking_package_services"
}

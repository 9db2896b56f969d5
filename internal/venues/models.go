package venues

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VenueStatus string

const (
	VenueStatusAvailable   VenueStatus = "Available"
	VenueStatusBooked      VenueStatus = "Booked"
	VenueStatusMaintenance VenueStatus = "Maintenance"
)

func (s VenueStatus) IsValid() bool {
	switch s {
	case VenueStatusAvailable, VenueStatusBooked, VenueStatusMaintenance:
		return true
	}
	return false
}

type ServiceCategory string

const (
	CategoryFood          ServiceCategory = "Food"
	CategoryDecoration    ServiceCategory = "Decoration"
	CategoryEntertainment ServiceCategory = "Entertainment"
	CategoryPhotography   ServiceCategory = "Photography"
	CategoryOther         ServiceCategory = "Other"
)

func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryDecoration, CategoryEntertainment, CategoryPhotography, CategoryOther:
		return true
	}
	return false
}

type Venue struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string      `json:"name" gorm:"size:200;not null"`
	Address   string      `json:"address" gorm:"not null"`
	Type      string      `json:"type" gorm:"size:50;not null;index"`
	Status    VenueStatus `json:"status" gorm:"size:50;not null;default:'Available'"`
	Rating    float64     `json:"rating" gorm:"not null;default:0;check:rating >= 0 AND rating <= 5"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Images             []VenueImage        `json:"images,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE"`
	AdditionalServices []AdditionalService `json:"additional_services,omitempty" gorm:"foreignKey:VenueID"`
}

func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (Venue) TableName() string {
	return "venues"
}

// IsBookable reports whether the venue accepts new bookings
func (v *Venue) IsBookable() bool {
	return v.Status != VenueStatusMaintenance
}

type VenueImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VenueID   uuid.UUID `json:"venue_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"not null"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
}

func (VenueImage) TableName() string {
	return "venue_images"
}

type AdditionalService struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	VenueID     uuid.UUID       `json:"venue_id" gorm:"type:uuid;not null;index"`
	Venue       *Venue          `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
	Name        string          `json:"name" gorm:"size:200;not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(18,2);not null"`
	Category    ServiceCategory `json:"category" gorm:"size:30;not null;default:'Other'"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (s *AdditionalService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (AdditionalService) TableName() string {
	return "additional_services"
}

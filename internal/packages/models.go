package packages

import (
	"time"

	"venuebook/internal/venues"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tier is the ordered package quality level
type Tier int16

const (
	TierBasic        Tier = 1
	TierIntermediate Tier = 2
	TierAdvance      Tier = 3
	TierCustom       Tier = 4
)

var tierNames = map[Tier]string{
	TierBasic:        "Basic",
	TierIntermediate: "Intermediate",
	TierAdvance:      "Advance",
	TierCustom:       "Custom",
}

func (t Tier) IsValid() bool {
	_, ok := tierNames[t]
	return ok
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "Unknown"
}

type VenuePackage struct {
	ID                          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	VenueID                     uuid.UUID       `json:"venue_id" gorm:"type:uuid;not null;index"`
	Venue                       *venues.Venue   `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
	Name                        string          `json:"name" gorm:"size:200;not null"`
	Description                 string          `json:"description"`
	Tier                        Tier            `json:"tier" gorm:"type:smallint;not null;index"`
	BaseCapacity                int             `json:"base_capacity" gorm:"not null"`
	BaseDurationHours           int             `json:"base_duration_hours" gorm:"not null"`
	BasePrice                   decimal.Decimal `json:"base_price" gorm:"type:numeric(18,2);not null;index"`
	PricePerAdditionalPerson    decimal.Decimal `json:"price_per_additional_person" gorm:"type:numeric(18,2);not null;default:0"`
	PricePerAdditionalHour      decimal.Decimal `json:"price_per_additional_hour" gorm:"type:numeric(18,2);not null;default:0"`
	IncludesDecoration          bool            `json:"includes_decoration"`
	IncludesCake                bool            `json:"includes_cake"`
	IncludesSoundSystem         bool            `json:"includes_sound_system"`
	IncludedServicesDescription string          `json:"included_services_description"`
	IsActive                    bool            `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt                   time.Time       `json:"created_at"`
	UpdatedAt                   time.Time       `json:"updated_at"`

	Services []PackageService `json:"services,omitempty" gorm:"foreignKey:PackageID"`
}

func (p *VenuePackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (VenuePackage) TableName() string {
	return "venue_packages"
}

type PackageService struct {
	ID                          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	PackageID                   uuid.UUID       `json:"package_id" gorm:"type:uuid;not null;index"`
	Name                        string          `json:"name" gorm:"size:200;not null"`
	Description                 string          `json:"description"`
	Price                       decimal.Decimal `json:"price" gorm:"type:numeric(18,2);not null;default:0"`
	IsIncludedInPackage         bool            `json:"is_included_in_package"`
	IsAvailableForCustomization bool            `json:"is_available_for_customization"`
	CreatedAt                   time.Time       `json:"created_at"`
}

func (s *PackageService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (PackageService) TableName() string {
	return "package_services"
}

package packages

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PackageServiceRequest struct {
	Name                        string          `json:"name" validate:"required,max=200"`
	Description                 string          `json:"description"`
	Price                       decimal.Decimal `json:"price"`
	IsIncludedInPackage         bool            `json:"is_included_in_package"`
	IsAvailableForCustomization bool            `json:"is_available_for_customization"`
}

// PackageRequest is used for create and for full-replace update
type PackageRequest struct {
	VenueID                     uuid.UUID               `json:"venue_id" validate:"required"`
	Name                        string                  `json:"name" validate:"required,max=200"`
	Description                 string                  `json:"description"`
	Tier                        Tier                    `json:"tier" validate:"required,min=1,max=4"`
	BaseCapacity                int                     `json:"base_capacity" validate:"required,min=1"`
	BaseDurationHours           int                     `json:"base_duration_hours" validate:"required,min=1"`
	BasePrice                   decimal.Decimal         `json:"base_price"`
	PricePerAdditionalPerson    decimal.Decimal         `json:"price_per_additional_person"`
	PricePerAdditionalHour      decimal.Decimal         `json:"price_per_additional_hour"`
	IncludesDecoration          bool                    `json:"includes_decoration"`
	IncludesCake                bool                    `json:"includes_cake"`
	IncludesSoundSystem         bool                    `json:"includes_sound_system"`
	IncludedServicesDescription string                  `json:"included_services_description"`
	Services                    []PackageServiceRequest `json:"services" validate:"omitempty,dive"`
}

type SearchRequest struct {
	Query    string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

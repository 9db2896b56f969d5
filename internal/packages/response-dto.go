package packages

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PackageServiceResponse struct {
	ID                          uuid.UUID       `json:"id"`
	Name                        string          `json:"name"`
	Description                 string          `json:"description"`
	Price                       decimal.Decimal `json:"price"`
	IsIncludedInPackage         bool            `json:"is_included_in_package"`
	IsAvailableForCustomization bool            `json:"is_available_for_customization"`
}

type PackageResponse struct {
	ID                          uuid.UUID                `json:"id"`
	VenueID                     uuid.UUID                `json:"venue_id"`
	VenueName                   string                   `json:"venue_name"`
	VenueType                   string                   `json:"venue_type"`
	Name                        string                   `json:"name"`
	Description                 string                   `json:"description"`
	Tier                        Tier                     `json:"tier"`
	TierName                    string                   `json:"tier_name"`
	BaseCapacity                int                      `json:"base_capacity"`
	BaseDurationHours           int                      `json:"base_duration_hours"`
	BasePrice                   decimal.Decimal          `json:"base_price"`
	PricePerAdditionalPerson    decimal.Decimal          `json:"price_per_additional_person"`
	PricePerAdditionalHour      decimal.Decimal          `json:"price_per_additional_hour"`
	IncludesDecoration          bool                     `json:"includes_decoration"`
	IncludesCake                bool                     `json:"includes_cake"`
	IncludesSoundSystem         bool                     `json:"includes_sound_system"`
	IncludedServicesDescription string                   `json:"included_services_description"`
	Services                    []PackageServiceResponse `json:"services"`
	CreatedAt                   time.Time                `json:"created_at"`
	UpdatedAt                   time.Time                `json:"updated_at"`
}

type SearchResponse struct {
	Packages []PackageResponse `json:"packages"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Source   string            `json:"source"` // "elasticsearch" or "database"
}

func ToPackageResponse(p *VenuePackage) PackageResponse {
	resp := PackageResponse{
		ID:                          p.ID,
		VenueID:                     p.VenueID,
		Name:                        p.Name,
		Description:                 p.Description,
		Tier:                        p.Tier,
		TierName:                    p.Tier.String(),
		BaseCapacity:                p.BaseCapacity,
		BaseDurationHours:           p.BaseDurationHours,
		BasePrice:                   p.BasePrice,
		PricePerAdditionalPerson:    p.PricePerAdditionalPerson,
		PricePerAdditionalHour:      p.PricePerAdditionalHour,
		IncludesDecoration:          p.IncludesDecoration,
		IncludesCake:                p.IncludesCake,
		IncludesSoundSystem:         p.IncludesSoundSystem,
		IncludedServicesDescription: p.IncludedServicesDescription,
		Services:                    make([]PackageServiceResponse, 0, len(p.Services)),
		CreatedAt:                   p.CreatedAt,
		UpdatedAt:                   p.UpdatedAt,
	}
	if p.Venue != nil {
		resp.VenueName = p.Venue.Name
		resp.VenueType = p.Venue.Type
	}
	for _, s := range p.Services {
		resp.Services = append(resp.Services, PackageServiceResponse{
			ID:                          s.ID,
			Name:                        s.Name,
			Description:                 s.Description,
			Price:                       s.Price,
			IsIncludedInPackage:         s.IsIncludedInPackage,
			IsAvailableForCustomization: s.IsAvailableForCustomization,
		})
	}
	return resp
}

func toPackageResponses(pkgs []VenuePackage) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for i := range pkgs {
		out = append(out, ToPackageResponse(&pkgs[i]))
	}
	return out
}

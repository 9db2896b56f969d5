package venues

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VenueResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	Name               string                      `json:"name"`
	Address            string                      `json:"address"`
	Type               string                      `json:"type"`
	Status             VenueStatus                 `json:"status"`
	Rating             float64                     `json:"rating"`
	ImageURLs          []string                    `json:"image_urls"`
	AdditionalServices []AdditionalServiceResponse `json:"additional_services,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

type AdditionalServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	VenueID     uuid.UUID       `json:"venue_id"`
	VenueName   string          `json:"venue_name"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    ServiceCategory `json:"category"`
}

func ToVenueResponse(v *Venue) VenueResponse {
	resp := VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Type:      v.Type,
		Status:    v.Status,
		Rating:    v.Rating,
		ImageURLs: make([]string, 0, len(v.Images)),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	for _, img := range v.Images {
		resp.ImageURLs = append(resp.ImageURLs, img.URL)
	}
	if len(v.AdditionalServices) > 0 {
		resp.AdditionalServices = make([]AdditionalServiceResponse, 0, len(v.AdditionalServices))
		for i := range v.AdditionalServices {
			resp.AdditionalServices = append(resp.AdditionalServices, toServiceResponse(&v.AdditionalServices[i], v.Name))
		}
	}
	return resp
}

func ToAdditionalServiceResponse(s *AdditionalService) AdditionalServiceResponse {
	venueName := ""
	if s.Venue != nil {
		venueName = s.Venue.Name
	}
	return toServiceResponse(s, venueName)
}

func toServiceResponse(s *AdditionalService, venueName string) AdditionalServiceResponse {
	return AdditionalServiceResponse{
		ID:          s.ID,
		VenueID:     s.VenueID,
		VenueName:   venueName,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Category:    s.Category,
	}
}

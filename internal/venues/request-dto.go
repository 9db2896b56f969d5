package venues

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Create and full-replace update share one payload
type VenueRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Address   string   `json:"address" validate:"required"`
	Type      string   `json:"type" validate:"required,max=50"`
	Status    string   `json:"status" validate:"omitempty,oneof=Available Booked Maintenance"`
	ImageURLs []string `json:"image_urls" validate:"omitempty,dive,required"`
}

type AdditionalServiceRequest struct {
	VenueID     uuid.UUID       `json:"venue_id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"omitempty,oneof=Food Decoration Entertainment Photography Other"`
}

type UpdateAdditionalServiceRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"omitempty,oneof=Food Decoration Entertainment Photography Other"`
}

package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID                uuid.UUID       `json:"id"`
	VenueID           uuid.UUID       `json:"venue_id"`
	VenueName         string          `json:"venue_name"`
	PackageID         *uuid.UUID      `json:"package_id,omitempty"`
	PackageName       string          `json:"package_name,omitempty"`
	UserID            uuid.UUID       `json:"user_id"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	IsCustomPackage   bool            `json:"is_custom_package"`
	CustomPackageName string          `json:"custom_package_name,omitempty"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	Status            Status          `json:"status"`
	PaymentStatus     PaymentStatus   `json:"payment_status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type BookedServiceResponse struct {
	ServiceID           uuid.UUID       `json:"service_id"`
	Name                string          `json:"name"`
	PriceAtBooking      decimal.Decimal `json:"price_at_booking"`
	Quantity            int             `json:"quantity"`
	IsIncludedInPackage bool            `json:"is_included_in_package"`
}

// BookingDetailResponse adds the caller, overrides, cost breakdown and service snapshots
type BookingDetailResponse struct {
	BookingResponse
	UserName               string                  `json:"user_name,omitempty"`
	UserEmail              string                  `json:"user_email,omitempty"`
	ModifiedCapacity       *int                    `json:"modified_capacity,omitempty"`
	ModifiedDurationHours  *int                    `json:"modified_duration_hours,omitempty"`
	BasePackageCost        decimal.Decimal         `json:"base_package_cost"`
	CapacityExtensionCost  decimal.Decimal         `json:"capacity_extension_cost"`
	DurationExtensionCost  decimal.Decimal         `json:"duration_extension_cost"`
	AdditionalServicesCost decimal.Decimal         `json:"additional_services_cost"`
	AdditionalServices     []BookedServiceResponse `json:"additional_services"`
	PackageServices        []BookedServiceResponse `json:"package_services"`
}

type AvailabilityResponse struct {
	VenueID     uuid.UUID `json:"venue_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	Reason      string    `json:"reason,omitempty"`
	BookedDates []string  `json:"booked_dates"`
}

func ToBookingResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:                b.ID,
		VenueID:           b.VenueID,
		PackageID:         b.PackageID,
		UserID:            b.UserID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		IsCustomPackage:   b.IsCustomPackage,
		CustomPackageName: b.CustomPackageName,
		TotalCost:         b.TotalCost,
		Status:            b.Status,
		PaymentStatus:     b.PaymentStatus,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if b.Venue != nil {
		resp.VenueName = b.Venue.Name
	}
	if b.Package != nil {
		resp.PackageName = b.Package.Name
	}
	return resp
}

func ToBookingResponses(bookings []Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}

func ToBookingDetailResponse(b *Booking) BookingDetailResponse {
	resp := BookingDetailResponse{
		BookingResponse:        ToBookingResponse(b),
		ModifiedCapacity:       b.ModifiedCapacity,
		ModifiedDurationHours:  b.ModifiedDurationHours,
		BasePackageCost:        b.BasePackageCost,
		CapacityExtensionCost:  b.CapacityExtensionCost,
		DurationExtensionCost:  b.DurationExtensionCost,
		AdditionalServicesCost: b.AdditionalServicesCost,
		AdditionalServices:     make([]BookedServiceResponse, 0, len(b.AdditionalServices)),
		PackageServices:        make([]BookedServiceResponse, 0, len(b.PackageServices)),
	}
	if b.User != nil {
		resp.UserName = b.User.Name
		resp.UserEmail = b.User.Email
	}
	for _, s := range b.AdditionalServices {
		resp.AdditionalServices = append(resp.AdditionalServices, BookedServiceResponse{
			ServiceID:      s.AdditionalServiceID,
			Name:           s.ServiceName,
			PriceAtBooking: s.PriceAtBooking,
			Quantity:       s.Quantity,
		})
	}
	for _, s := range b.PackageServices {
		resp.PackageServices = append(resp.PackageServices, BookedServiceResponse{
			ServiceID:           s.PackageServiceID,
			Name:                s.ServiceName,
			PriceAtBooking:      s.PriceAtBooking,
			Quantity:            s.Quantity,
			IsIncludedInPackage: s.IsIncludedInPackage,
		})
	}
	return resp
}

package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange bounds a report by booking start time. Nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

type VenueBookingStats struct {
	VenueID           uuid.UUID       `json:"venue_id"`
	VenueName         string          `json:"venue_name"`
	TotalBookings     int             `json:"total_bookings"`
	ConfirmedBookings int             `json:"confirmed_bookings"`
	CanceledBookings  int             `json:"canceled_bookings"`
	Revenue           decimal.Decimal `json:"revenue"`
}

type DailyBookingStats struct {
	Date              string          `json:"date"`
	TotalBookings     int             `json:"total_bookings"`
	ConfirmedBookings int             `json:"confirmed_bookings"`
	CanceledBookings  int             `json:"canceled_bookings"`
	Revenue           decimal.Decimal `json:"revenue"`
}

// BookingOverview totals bookings in a range. Revenue counts confirmed bookings only.
type BookingOverview struct {
	From              *time.Time          `json:"from,omitempty"`
	To                *time.Time          `json:"to,omitempty"`
	TotalBookings     int                 `json:"total_bookings"`
	ConfirmedBookings int                 `json:"confirmed_bookings"`
	CanceledBookings  int                 `json:"canceled_bookings"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	CancellationRate  float64             `json:"cancellation_rate"`
	ByVenue           []VenueBookingStats `json:"by_venue"`
}

// BuildOverview folds per-venue rows into totals
func BuildOverview(r DateRange, stats []VenueBookingStats) BookingOverview {
	overview := BookingOverview{
		From:         r.From,
		To:           r.To,
		TotalRevenue: decimal.Zero,
		ByVenue:      make([]VenueBookingStats, 0, len(stats)),
	}
	for _, s := range stats {
		overview.TotalBookings += s.TotalBookings
		overview.ConfirmedBookings += s.ConfirmedBookings
		overview.CanceledBookings += s.CanceledBookings
		overview.TotalRevenue = overview.TotalRevenue.Add(s.Revenue)
		overview.ByVenue = append(overview.ByVenue, s)
	}
	if overview.TotalBookings > 0 {
		overview.CancellationRate = float64(overview.CanceledBookings) / float64(overview.TotalBookings) * 100
	}
	return overview
}

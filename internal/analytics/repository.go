package analytics

import (
	"context"

	"venuebook/internal/bookings"
	"venuebook/internal/shared/apperr"

	"gorm.io/gorm"
)

type Repository interface {
	GetVenueBreakdown(ctx context.Context, r DateRange) ([]VenueBookingStats, error)
	GetDailyBookingStats(ctx context.Context, r DateRange) ([]DailyBookingStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func applyRange(q *gorm.DB, r DateRange) *gorm.DB {
	if r.From != nil {
		q = q.Where("bookings.start_time >= ?", *r.From)
	}
	if r.To != nil {
		q = q.Where("bookings.start_time <= ?", *r.To)
	}
	return q
}

func (r *repository) GetVenueBreakdown(ctx context.Context, dr DateRange) ([]VenueBookingStats, error) {
	var stats []VenueBookingStats
	q := r.db.WithContext(ctx).
		Table("bookings").
		Select(`venues.id AS venue_id,
			venues.name AS venue_name,
			COUNT(*) AS total_bookings,
			SUM(CASE WHEN bookings.status = ? THEN 1 ELSE 0 END) AS confirmed_bookings,
			SUM(CASE WHEN bookings.status = ? THEN 1 ELSE 0 END) AS canceled_bookings,
			COALESCE(SUM(CASE WHEN bookings.status = ? THEN bookings.total_cost ELSE 0 END), 0) AS revenue`,
			bookings.StatusConfirmed, bookings.StatusCanceled, bookings.StatusConfirmed).
		Joins("JOIN venues ON venues.id = bookings.venue_id")

	err := applyRange(q, dr).
		Group("venues.id, venues.name").
		Order("total_bookings DESC, venues.name ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("failed to aggregate bookings by venue", err)
	}
	return stats, nil
}

func (r *repository) GetDailyBookingStats(ctx context.Context, dr DateRange) ([]DailyBookingStats, error) {
	var stats []DailyBookingStats
	q := r.db.WithContext(ctx).
		Table("bookings").
		Select(`TO_CHAR(DATE(bookings.start_time), 'YYYY-MM-DD') AS date,
			COUNT(*) AS total_bookings,
			SUM(CASE WHEN bookings.status = ? THEN 1 ELSE 0 END) AS confirmed_bookings,
			SUM(CASE WHEN bookings.status = ? THEN 1 ELSE 0 END) AS canceled_bookings,
			COALESCE(SUM(CASE WHEN bookings.status = ? THEN bookings.total_cost ELSE 0 END), 0) AS revenue`,
			bookings.StatusConfirmed, bookings.StatusCanceled, bookings.StatusConfirmed)

	err := applyRange(q, dr).
		Group("DATE(bookings.start_time)").
		Order("DATE(bookings.start_time) ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("failed to aggregate daily bookings", err)
	}
	return stats, nil
}

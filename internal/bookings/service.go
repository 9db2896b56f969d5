package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"venuebook/internal/notifications"
	"venuebook/internal/packages"
	"venuebook/internal/shared/apperr"
	"venuebook/internal/shared/constants"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
	"venuebook/pkg/metrics"

	"github.com/google/uuid"
)

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingDetailResponse, error)
	CheckAvailability(ctx context.Context, venueID uuid.UUID, start time.Time, durationDays float64) (*AvailabilityResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*BookingDetailResponse, error)

	GetBookingsByVenue(ctx context.Context, venueID uuid.UUID) ([]BookingResponse, error)
	GetBookingsByUser(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	GetBookingsByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]BookingResponse, error)
	GetBookingsByDateRange(ctx context.Context, from, to time.Time) ([]BookingResponse, error)
	GetAllBookings(ctx context.Context) ([]BookingResponse, error)
}

type service struct {
	repo      Repository
	locker    VenueLocker
	publisher notifications.Publisher
	cache     cache.Service
	log       *logger.Logger
}

func NewService(repo Repository, locker VenueLocker, publisher notifications.Publisher, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		cache:     cacheService,
		log:       log.WithComponent("bookings"),
	}
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingDetailResponse, error) {
	booking, err := s.createBooking(ctx, userID, req)
	if err != nil {
		metrics.BookingRejections.WithLabelValues(string(apperr.KindOf(err))).Inc()
		return nil, err
	}
	metrics.BookingsCreated.Inc()
	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.VenueID.String(), booking.UserID.String(), booking.TotalCost.StringFixed(2))
	s.afterCommit(ctx, booking, notifications.EventTypeBookingCreated)

	// the booking is already committed, so a failed reload falls back to the in-memory value
	stored, err := s.repo.GetByIDWithRelations(ctx, booking.ID)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to reload created booking", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
		stored = booking
	}
	resp := ToBookingDetailResponse(stored)
	return &resp, nil
}

func (s *service) createBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	start, err := ParseTimestamp(req.StartTime)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	release, err := s.locker.Acquire(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, ErrVenueLocked) {
			return nil, apperr.Unavailable("venue is being booked by another request, try again", err)
		}
		return nil, apperr.Internal("failed to lock venue", err)
	}
	defer release()

	var booking *Booking
	err = s.repo.WithTx(ctx, func(tx Repository) error {
		venue, err := tx.LockVenue(ctx, req.VenueID)
		if err != nil {
			return err
		}
		if !venue.IsBookable() {
			return apperr.InvalidState("venue is under maintenance and cannot be booked")
		}

		exists, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("user not found")
		}

		var pkg *packages.VenuePackage
		if req.PackageID != nil {
			pkg, err = tx.GetActivePackage(ctx, *req.PackageID)
			if err != nil {
				return err
			}
			if pkg.VenueID != venue.ID {
				return apperr.Validation("package does not belong to this venue")
			}
		}

		additional, err := resolveAdditionalServices(ctx, tx, venue.ID, req.AdditionalServiceIDs)
		if err != nil {
			return err
		}
		pkgServices, err := resolvePackageServices(pkg, req.PackageServiceIDs)
		if err != nil {
			return err
		}

		duration, ok := EffectiveDuration(pkg, req.ModifiedDurationHours, req.DurationHours)
		if !ok {
			return apperr.Validation("duration_hours is required when no package is selected")
		}
		if duration < 1 || duration > MaxBookingDays {
			return apperr.Validation(fmt.Sprintf("duration must be between 1 and %d days", MaxBookingDays))
		}
		end := EndTimeFor(start, float64(duration))
		if !end.After(start) {
			return apperr.Validation("end time must be after start time")
		}

		conflict, err := tx.HasOverlap(ctx, venue.ID, DateOf(start), DateOf(end))
		if err != nil {
			return err
		}
		if conflict {
			s.log.LogBookingConflict(ctx, venue.ID.String(), start, end)
			return apperr.Conflict("venue is already booked for the selected dates")
		}

		costs := PriceBooking(pkg, req.ModifiedCapacity, req.ModifiedDurationHours, additional, pkgServices)
		booking = &Booking{
			ID:                     uuid.New(),
			VenueID:                venue.ID,
			PackageID:              req.PackageID,
			UserID:                 userID,
			StartTime:              start,
			EndTime:                end,
			IsCustomPackage:        req.IsCustomPackage,
			CustomPackageName:      strings.TrimSpace(req.CustomPackageName),
			ModifiedCapacity:       req.ModifiedCapacity,
			ModifiedDurationHours:  req.ModifiedDurationHours,
			BasePackageCost:        costs.BasePackageCost,
			CapacityExtensionCost:  costs.CapacityExtensionCost,
			DurationExtensionCost:  costs.DurationExtensionCost,
			AdditionalServicesCost: costs.AdditionalServicesCost,
			TotalCost:              costs.TotalCost,
			Status:                 StatusConfirmed,
			PaymentStatus:          PaymentPending,
			AdditionalServices:     snapshotAdditional(additional),
			PackageServices:        snapshotPackageServices(pkgServices),
		}
		return tx.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// resolveAdditionalServices loads the requested venue services, rejecting the whole set if any id is foreign or unknown
func resolveAdditionalServices(ctx context.Context, tx Repository, venueID uuid.UUID, ids []uuid.UUID) ([]venues.AdditionalService, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	services, err := tx.GetVenueAdditionalServices(ctx, venueID, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, apperr.Validation("one or more additional services are invalid for this venue")
	}
	return services, nil
}

// resolvePackageServices picks the requested services out of the selected package.
// Without a package the ids are ignored.
func resolvePackageServices(pkg *packages.VenuePackage, ids []uuid.UUID) ([]packages.PackageService, error) {
	ids = uniqueIDs(ids)
	if pkg == nil || len(ids) == 0 {
		return nil, nil
	}
	byID := make(map[uuid.UUID]packages.PackageService, len(pkg.Services))
	for _, svc := range pkg.Services {
		byID[svc.ID] = svc
	}
	out := make([]packages.PackageService, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, apperr.Validation("one or more package services are invalid for this package")
		}
		out = append(out, svc)
	}
	return out, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func snapshotAdditional(services []venues.AdditionalService) []BookingAdditionalService {
	out := make([]BookingAdditionalService, 0, len(services))
	for _, svc := range services {
		out = append(out, BookingAdditionalService{
			AdditionalServiceID: svc.ID,
			ServiceName:         svc.Name,
			PriceAtBooking:      svc.Price,
			Quantity:            1,
		})
	}
	return out
}

func snapshotPackageServices(services []packages.PackageService) []BookingPackageService {
	out := make([]BookingPackageService, 0, len(services))
	for _, svc := range services {
		out = append(out, BookingPackageService{
			PackageServiceID:    svc.ID,
			ServiceName:         svc.Name,
			PriceAtBooking:      svc.Price,
			Quantity:            1,
			IsIncludedInPackage: svc.IsIncludedInPackage,
		})
	}
	return out
}

func (s *service) CheckAvailability(ctx context.Context, venueID uuid.UUID, start time.Time, durationDays float64) (*AvailabilityResponse, error) {
	if durationDays <= 0 || math.IsNaN(durationDays) || durationDays > MaxBookingDays {
		return nil, apperr.Validation(fmt.Sprintf("duration must be a positive number of days up to %d", MaxBookingDays))
	}
	end := EndTimeFor(start, durationDays)
	if !end.After(start) {
		return nil, apperr.Validation("end time must be after start time")
	}

	venue, err := s.repo.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	resp := &AvailabilityResponse{
		VenueID:     venue.ID,
		StartTime:   start,
		EndTime:     end,
		BookedDates: []string{},
	}
	if !venue.IsBookable() {
		resp.Reason = "venue is under maintenance"
		return resp, nil
	}

	bookings, err := s.repo.ListActiveByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	resp.IsAvailable = true
	for _, b := range bookings {
		if DatesOverlap(b.StartTime, b.EndTime, resp.StartTime, resp.EndTime) {
			resp.IsAvailable = false
			resp.Reason = "venue is already booked for the selected dates"
			break
		}
	}
	resp.BookedDates = ExpandBookedDates(bookings)
	return resp, nil
}

// CancelBooking is idempotent: canceling a canceled booking succeeds without another write or event
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == StatusCanceled {
		return nil
	}

	changed, err := s.repo.MarkCanceled(ctx, id)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	booking.Status = StatusCanceled

	metrics.BookingsCanceled.Inc()
	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.VenueID.String(), booking.UserID.String())
	s.afterCommit(ctx, booking, notifications.EventTypeBookingCanceled)
	return nil
}

// afterCommit publishes the lifecycle event and drops cached analytics; failures are logged only
func (s *service) afterCommit(ctx context.Context, b *Booking, eventType notifications.EventType) {
	event := notifications.NewBookingEvent(eventType, b.ID, b.VenueID, b.UserID)
	event.PackageID = b.PackageID
	event.StartTime = b.StartTime
	event.EndTime = b.EndTime
	event.TotalCost = b.TotalCost
	event.Status = b.Status.String()

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking event", err, map[string]interface{}{
			"booking_id": b.ID.String(),
			"event_type": string(eventType),
		})
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS_ALL); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate analytics cache", err, nil)
	}
}

func (s *service) GetBookingByID(ctx context.Context, id uuid.UUID) (*BookingDetailResponse, error) {
	booking, err := s.repo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBookingDetailResponse(booking)
	return &resp, nil
}

func (s *service) GetBookingsByVenue(ctx context.Context, venueID uuid.UUID) ([]BookingResponse, error) {
	if _, err := s.repo.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListActiveByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

func (s *service) GetBookingsByUser(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

func (s *service) GetBookingsByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]BookingResponse, error) {
	if !from.Before(to) {
		return nil, apperr.Validation("start_date must be before end_date")
	}
	bookings, err := s.repo.ListByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

func (s *service) GetBookingsByDateRange(ctx context.Context, from, to time.Time) ([]BookingResponse, error) {
	if to.Before(from) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}
	bookings, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

func (s *service) GetAllBookings(ctx context.Context) ([]BookingResponse, error) {
	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

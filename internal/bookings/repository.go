package bookings

import (
	"context"
	"errors"
	"time"

	"venuebook/internal/packages"
	"venuebook/internal/shared/apperr"
	"venuebook/internal/users"
	"venuebook/internal/venues"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSTATE raised by the bookings no-overlap exclusion constraint
const exclusionViolation = "23P01"

type Repository interface {
	// WithTx runs fn inside one database transaction; fn's Repository is bound to it
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	LockVenue(ctx context.Context, venueID uuid.UUID) (*venues.Venue, error)
	GetVenue(ctx context.Context, venueID uuid.UUID) (*venues.Venue, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	GetActivePackage(ctx context.Context, packageID uuid.UUID) (*packages.VenuePackage, error)
	GetVenueAdditionalServices(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]venues.AdditionalService, error)
	HasOverlap(ctx context.Context, venueID uuid.UUID, startDate, endDate time.Time) (bool, error)

	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	MarkCanceled(ctx context.Context, id uuid.UUID) (bool, error)

	ListActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	ListByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Booking, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Booking, error)
	ListAll(ctx context.Context) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

// LockVenue loads the venue row FOR UPDATE, serializing concurrent bookings of one venue
func (r *repository) LockVenue(ctx context.Context, venueID uuid.UUID) (*venues.Venue, error) {
	var venue venues.Venue
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&venue, "id = ?", venueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("venue not found")
		}
		return nil, apperr.Internal("failed to lock venue", err)
	}
	return &venue, nil
}

func (r *repository) GetVenue(ctx context.Context, venueID uuid.UUID) (*venues.Venue, error) {
	var venue venues.Venue
	if err := r.db.WithContext(ctx).First(&venue, "id = ?", venueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("venue not found")
		}
		return nil, apperr.Internal("failed to load venue", err)
	}
	return &venue, nil
}

func (r *repository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, apperr.Internal("failed to check user", err)
	}
	return count > 0, nil
}

func (r *repository) GetActivePackage(ctx context.Context, packageID uuid.UUID) (*packages.VenuePackage, error) {
	var pkg packages.VenuePackage
	err := r.db.WithContext(ctx).
		Preload("Services").
		Where("is_active = ?", true).
		First(&pkg, "id = ?", packageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("package not found or inactive")
		}
		return nil, apperr.Internal("failed to load package", err)
	}
	return &pkg, nil
}

// GetVenueAdditionalServices returns the services among ids that belong to the venue
func (r *repository) GetVenueAdditionalServices(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]venues.AdditionalService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []venues.AdditionalService
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id IN ?", venueID, ids).
		Find(&services).Error
	if err != nil {
		return nil, apperr.Internal("failed to load additional services", err)
	}
	return services, nil
}

// HasOverlap checks for a non-canceled booking of the venue sharing any calendar day with [startDate, endDate]
func (r *repository) HasOverlap(ctx context.Context, venueID uuid.UUID, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("venue_id = ? AND status <> ?", venueID, StatusCanceled).
		Where("DATE(start_time) <= ? AND DATE(end_time) >= ?", endDate.Format(dateLayout), startDate.Format(dateLayout)).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check booking conflicts", err)
	}
	return count > 0, nil
}

// Create inserts the booking and its service snapshots
func (r *repository) Create(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
			return err
		}
		if len(booking.AdditionalServices) > 0 {
			for i := range booking.AdditionalServices {
				booking.AdditionalServices[i].BookingID = booking.ID
			}
			if err := tx.Create(&booking.AdditionalServices).Error; err != nil {
				return err
			}
		}
		if len(booking.PackageServices) > 0 {
			for i := range booking.PackageServices {
				booking.PackageServices[i].BookingID = booking.ID
			}
			if err := tx.Create(&booking.PackageServices).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return apperr.Conflict("venue is already booked for the selected dates")
		}
		return apperr.Internal("failed to create booking", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal("failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Package").
		Preload("User").
		Preload("AdditionalServices", orderSnapshots).
		Preload("PackageServices", orderSnapshots).
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal("failed to load booking", err)
	}
	return &booking, nil
}

func orderSnapshots(db *gorm.DB) *gorm.DB {
	return db.Order("service_name ASC")
}

// MarkCanceled moves a non-canceled booking to Canceled. It reports false when the booking was already canceled.
func (r *repository) MarkCanceled(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status <> ?", id, StatusCanceled).
		Updates(map[string]interface{}{
			"status":     StatusCanceled,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, apperr.Internal("failed to cancel booking", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// listQuery preloads what list responses show
func (r *repository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Preload("Venue").
		Preload("Package")
}

func (r *repository) find(q *gorm.DB) ([]Booking, error) {
	var bookings []Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (r *repository) ListActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]Booking, error) {
	return r.find(r.listQuery(ctx).
		Where("venue_id = ? AND status <> ?", venueID, StatusCanceled).
		Order("start_time ASC"))
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	return r.find(r.listQuery(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC"))
}

func (r *repository) ListByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Booking, error) {
	return r.find(r.listQuery(ctx).
		Where("user_id = ?", userID).
		Where("start_time >= ? AND end_time <= ?", from, to).
		Order("start_time ASC"))
}

func (r *repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]Booking, error) {
	return r.find(r.listQuery(ctx).
		Where("start_time >= ? AND end_time <= ?", from, to).
		Order("start_time ASC"))
}

func (r *repository) ListAll(ctx context.Context) ([]Booking, error) {
	return r.find(r.listQuery(ctx).Order("created_at DESC"))
}

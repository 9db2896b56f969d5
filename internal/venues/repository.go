package venues

import (
	"context"
	"errors"

	"venuebook/internal/shared/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository interface for venue and additional service persistence
type Repository interface {
	// Venues
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
	UpdateVenue(ctx context.Context, venue *Venue, images []VenueImage) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	VenueExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Additional services
	CreateService(ctx context.Context, svc *AdditionalService) error
	GetServiceByID(ctx context.Context, id uuid.UUID) (*AdditionalService, error)
	ListServicesByVenue(ctx context.Context, venueID uuid.UUID) ([]AdditionalService, error)
	ListAllServices(ctx context.Context) ([]AdditionalService, error)
	UpdateService(ctx context.Context, svc *AdditionalService) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func servicesByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// ============= VENUES =============

func (r *repository) CreateVenue(ctx context.Context, venue *Venue) error {
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		return apperr.Internal("failed to create venue", err)
	}
	return nil
}

func (r *repository) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Preload("AdditionalServices", servicesByName).
		First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("venue not found")
		}
		return nil, apperr.Internal("failed to load venue", err)
	}
	return &venue, nil
}

func (r *repository) ListVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Order("created_at DESC").
		Find(&venues).Error
	if err != nil {
		return nil, apperr.Internal("failed to list venues", err)
	}
	return venues, nil
}

// UpdateVenue saves the scalar columns and replaces the image list
func (r *repository) UpdateVenue(ctx context.Context, venue *Venue, images []VenueImage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "AdditionalServices").Save(venue).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", venue.ID).Delete(&VenueImage{}).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Internal("failed to update venue", err)
	}
	venue.Images = images
	return nil
}

// DeleteVenue removes a venue with its images, services and packages. Venues with booking history are kept.
func (r *repository) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue Venue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&venue, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("venue not found")
			}
			return apperr.Internal("failed to lock venue", err)
		}

		var bookingCount int64
		if err := tx.Table("bookings").Where("venue_id = ?", id).Count(&bookingCount).Error; err != nil {
			return apperr.Internal("failed to count venue bookings", err)
		}
		if bookingCount > 0 {
			return apperr.InvalidState("venue has bookings and cannot be deleted")
		}

		statements := []string{
			"DELETE FROM package_services WHERE package_id IN (SELECT id FROM venue_packages WHERE venue_id = ?)",
			"DELETE FROM venue_packages WHERE venue_id = ?",
			"DELETE FROM additional_services WHERE venue_id = ?",
			"DELETE FROM venue_images WHERE venue_id = ?",
			"DELETE FROM venues WHERE id = ?",
		}
		for _, stmt := range statements {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return apperr.Internal("failed to delete venue", err)
			}
		}
		return nil
	})
}

func (r *repository) VenueExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Venue{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.Internal("failed to check venue", err)
	}
	return count > 0, nil
}

// ============= ADDITIONAL SERVICES =============

func (r *repository) CreateService(ctx context.Context, svc *AdditionalService) error {
	if err := r.db.WithContext(ctx).Omit("Venue").Create(svc).Error; err != nil {
		return apperr.Internal("failed to create additional service", err)
	}
	return nil
}

func (r *repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*AdditionalService, error) {
	var svc AdditionalService
	err := r.db.WithContext(ctx).Preload("Venue").First(&svc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("additional service not found")
		}
		return nil, apperr.Internal("failed to load additional service", err)
	}
	return &svc, nil
}

func (r *repository) ListServicesByVenue(ctx context.Context, venueID uuid.UUID) ([]AdditionalService, error) {
	var services []AdditionalService
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("venue_id = ?", venueID).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, apperr.Internal("failed to list additional services", err)
	}
	return services, nil
}

func (r *repository) ListAllServices(ctx context.Context) ([]AdditionalService, error) {
	var services []AdditionalService
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Joins("JOIN venues ON venues.id = additional_services.venue_id").
		Order("venues.name ASC, additional_services.name ASC").
		Find(&services).Error
	if err != nil {
		return nil, apperr.Internal("failed to list additional services", err)
	}
	return services, nil
}

func (r *repository) UpdateService(ctx context.Context, svc *AdditionalService) error {
	if err := r.db.WithContext(ctx).Omit("Venue").Save(svc).Error; err != nil {
		return apperr.Internal("failed to update additional service", err)
	}
	return nil
}

func (r *repository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&AdditionalService{}, "id = ?", id)
	if result.Error != nil {
		return apperr.Internal("failed to delete additional service", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("additional service not found")
	}
	return nil
}

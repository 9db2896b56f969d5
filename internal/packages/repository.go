package packages

import (
	"context"
	"errors"

	"venuebook/internal/shared/apperr"
	"venuebook/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	VenueExists(ctx context.Context, venueID uuid.UUID) (bool, error)
	Create(ctx context.Context, pkg *VenuePackage) error
	Update(ctx context.Context, pkg *VenuePackage, services []PackageService) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*VenuePackage, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*VenuePackage, error)
	FindActive(ctx context.Context, criteria FilterCriteria) ([]VenuePackage, error)
	ListActive(ctx context.Context) ([]VenuePackage, error)
	ListActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]VenuePackage, error)
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]VenuePackage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func servicesByName(db *gorm.DB) *gorm.DB {
	return db.Order("package_services.name ASC")
}

// activeQuery joins the owning venue and preloads services for every active package
func (r *repository) activeQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&VenuePackage{}).
		Joins("Venue").
		Preload("Services", servicesByName).
		Where("venue_packages.is_active = ?", true)
}

func (r *repository) VenueExists(ctx context.Context, venueID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&venues.Venue{}).Where("id = ?", venueID).Count(&count).Error; err != nil {
		return false, apperr.Internal("failed to check venue", err)
	}
	return count > 0, nil
}

func (r *repository) Create(ctx context.Context, pkg *VenuePackage) error {
	if err := r.db.WithContext(ctx).Omit("Venue").Create(pkg).Error; err != nil {
		return apperr.Internal("failed to create package", err)
	}
	return nil
}

// Update saves the package columns and replaces its services
func (r *repository) Update(ctx context.Context, pkg *VenuePackage, services []PackageService) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Venue", "Services").Save(pkg).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&PackageService{}).Error; err != nil {
			return err
		}
		if len(services) > 0 {
			if err := tx.Create(&services).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Internal("failed to update package", err)
	}
	pkg.Services = services
	return nil
}

// Deactivate soft-deletes a package
func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&VenuePackage{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return apperr.Internal("failed to delete package", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("package not found")
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*VenuePackage, error) {
	var pkg VenuePackage
	err := r.db.WithContext(ctx).
		Joins("Venue").
		Preload("Services", servicesByName).
		First(&pkg, "venue_packages.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("package not found")
		}
		return nil, apperr.Internal("failed to load package", err)
	}
	return &pkg, nil
}

func (r *repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*VenuePackage, error) {
	var pkg VenuePackage
	err := r.activeQuery(ctx).First(&pkg, "venue_packages.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("package not found")
		}
		return nil, apperr.Internal("failed to load package", err)
	}
	return &pkg, nil
}

// FindActive narrows the active set in SQL using the scalar predicates of criteria.
// The search term is left to FilterCriteria.Matches.
func (r *repository) FindActive(ctx context.Context, criteria FilterCriteria) ([]VenuePackage, error) {
	q := r.activeQuery(ctx)
	if criteria.MinPrice != nil {
		q = q.Where("venue_packages.base_price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		q = q.Where("venue_packages.base_price <= ?", *criteria.MaxPrice)
	}
	if criteria.MinCapacity != nil {
		q = q.Where("venue_packages.base_capacity >= ?", *criteria.MinCapacity)
	}
	if criteria.MaxCapacity != nil {
		q = q.Where("venue_packages.base_capacity <= ?", *criteria.MaxCapacity)
	}
	if len(criteria.Tiers) > 0 {
		q = q.Where("venue_packages.tier IN ?", criteria.Tiers)
	}
	if len(criteria.VenueTypes) > 0 {
		q = q.Where(`"Venue"."type" IN ?`, criteria.VenueTypes)
	}

	var pkgs []VenuePackage
	if err := q.Order("venue_packages.base_price ASC").Find(&pkgs).Error; err != nil {
		return nil, apperr.Internal("failed to filter packages", err)
	}
	return pkgs, nil
}

func (r *repository) ListActive(ctx context.Context) ([]VenuePackage, error) {
	var pkgs []VenuePackage
	err := r.activeQuery(ctx).
		Order(`"Venue"."name" ASC`).
		Order("venue_packages.tier ASC").
		Find(&pkgs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list packages", err)
	}
	return pkgs, nil
}

func (r *repository) ListActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]VenuePackage, error) {
	var pkgs []VenuePackage
	err := r.activeQuery(ctx).
		Where("venue_packages.venue_id = ?", venueID).
		Order("venue_packages.tier ASC").
		Find(&pkgs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list venue packages", err)
	}
	return pkgs, nil
}

func (r *repository) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]VenuePackage, error) {
	if len(ids) == 0 {
		return []VenuePackage{}, nil
	}
	var pkgs []VenuePackage
	if err := r.activeQuery(ctx).Where("venue_packages.id IN ?", ids).Find(&pkgs).Error; err != nil {
		return nil, apperr.Internal("failed to load packages", err)
	}
	return pkgs, nil
}

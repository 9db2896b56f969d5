package users

import (
	"context"
	"errors"

	"venuebook/internal/shared/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	EmailTaken(ctx context.Context, email string, exceptID uuid.UUID) (bool, error)
	Update(ctx context.Context, user *User) error
	ListBookings(ctx context.Context, userID uuid.UUID) ([]UserBooking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}

func (r *repository) EmailTaken(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check email", err)
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperr.Internal("failed to update user", err)
	}
	return nil
}

// ListBookings reads the bookings table directly so this package stays below bookings in the import graph
func (r *repository) ListBookings(ctx context.Context, userID uuid.UUID) ([]UserBooking, error) {
	var rows []UserBooking
	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`b.id, b.venue_id, v.name AS venue_name, p.name AS package_name,
			b.start_time, b.end_time, b.is_custom_package AS is_custom, b.custom_package_name,
			b.total_cost, b.status, b.payment_status, b.created_at`).
		Joins("JOIN venues v ON v.id = b.venue_id").
		Joins("LEFT JOIN venue_packages p ON p.id = b.package_id").
		Where("b.user_id = ?", userID).
		Order("b.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to list user bookings", err)
	}
	return rows, nil
}

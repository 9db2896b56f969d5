package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateUserRequest carries the admin-editable profile fields; nil fields are left alone
type UpdateUserRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=150"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=30"`
	Role          *string `json:"role" validate:"omitempty,oneof=User Admin"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserBooking is the booking summary shown on a user's detail page
type UserBooking struct {
	ID                uuid.UUID       `json:"id"`
	VenueID           uuid.UUID       `json:"venue_id"`
	VenueName         string          `json:"venue_name"`
	PackageName       *string         `json:"package_name,omitempty"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	IsCustom          bool            `json:"is_custom"`
	CustomPackageName *string         `json:"custom_package_name,omitempty"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"payment_status"`
	CreatedAt         time.Time       `json:"created_at"`
}

type UserDetailResponse struct {
	UserResponse
	Bookings []UserBooking `json:"bookings"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

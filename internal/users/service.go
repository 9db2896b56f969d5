package users

import (
	"context"
	"strings"

	"venuebook/internal/shared/apperr"

	"github.com/google/uuid"
)

type Service interface {
	GetAllUsers(ctx context.Context) ([]UserResponse, error)
	GetUserDetails(ctx context.Context, id uuid.UUID) (*UserDetailResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAllUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out, nil
}

func (s *service) GetUserDetails(ctx context.Context, id uuid.UUID) (*UserDetailResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookings(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []UserBooking{}
	}

	return &UserDetailResponse{
		UserResponse: ToUserResponse(user),
		Bookings:     bookings,
	}, nil
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, apperr.Validation("email must not be empty")
		}
		taken, err := s.repo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("email is already in use")
		}
		user.Email = email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		user.Name = name
	}
	if req.ContactNumber != nil {
		user.ContactNumber = strings.TrimSpace(*req.ContactNumber)
	}
	if req.Role != nil {
		if !IsValidRole(*req.Role) {
			return nil, apperr.Validation("role must be User or Admin")
		}
		user.Role = Role(*req.Role)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

package service

import (
	"context"

	"cafehub/internal/models"
	"cafehub/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID      uint
	Email       string
	FirstName   string
	LastName    string
	Description string
	ImageURL    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile edits the profile fields. An empty image URL restores the placeholder.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.UserID == 0 {
		return nil, models.ErrNotLoggedIn
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Description = in.Description
	user.ImageURL = in.ImageURL
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultUserImageURL
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

package repository

import (
	"context"
	"errors"
	"log/slog"

	"cafehub/internal/cache"
	"cafehub/internal/models"
	"cafehub/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

// GetByID is cached. The cached copy never carries the password hash.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when no user has that exact username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrUsernameTaken
		}
		r.log.Failed(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.Created(ctx, slog.Uint64("id", uint64(user.ID)), slog.String("username", user.Username))
	return nil
}

// UpdateProfile writes the profile columns only. Username, admin and password are untouched.
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(user).
		Select("email", "first_name", "last_name", "description", "image_url").
		Updates(user)
	if err := result.Error; err != nil {
		r.log.Failed(ctx, "update", err)
		return models.NewInternalError(err)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", user.ID)
	}
	cache.InvalidateUser(ctx, user.ID)
	r.log.Updated(ctx, slog.Uint64("id", uint64(user.ID)))
	return nil
}

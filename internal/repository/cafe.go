package repository

import (
	"context"
	"errors"
	"log/slog"

	"cafehub/internal/cache"
	"cafehub/internal/models"
	"cafehub/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CafeRepository defines persistence operations for cafes.
type CafeRepository interface {
	List(ctx context.Context) ([]models.Cafe, error)
	GetByID(ctx context.Context, id uint) (*models.Cafe, error)
	Create(ctx context.Context, cafe *models.Cafe) error
	Update(ctx context.Context, cafe *models.Cafe) error
}

type cafeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCafeRepository returns a new CafeRepository implementation.
func NewCafeRepository(db *gorm.DB) CafeRepository {
	return &cafeRepository{db: db, log: observability.NewRepoLogger("cafes")}
}

func (r *cafeRepository) List(ctx context.Context) ([]models.Cafe, error) {
	var cafes []models.Cafe
	if err := r.db.WithContext(ctx).
		Preload("City").
		Order("name ASC").
		Find(&cafes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return cafes, nil
}

func (r *cafeRepository) GetByID(ctx context.Context, id uint) (*models.Cafe, error) {
	var cafe models.Cafe
	err := cache.Aside(ctx, cache.CafeKey(id), &cafe, cache.CafeTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("City").First(&cafe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Cafe", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cafe, nil
}

func (r *cafeRepository) Create(ctx context.Context, cafe *models.Cafe) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cafe).Error; err != nil {
		r.log.Failed(ctx, "create", err)
		if isForeignKeyError(err) {
			return models.NewValidationError("Unknown city")
		}
		return models.NewInternalError(err)
	}
	r.log.Created(ctx, slog.Uint64("id", uint64(cafe.ID)), slog.String("city_code", cafe.CityCode))
	return nil
}

// Update writes the editable columns of an existing cafe.
func (r *cafeRepository) Update(ctx context.Context, cafe *models.Cafe) error {
	result := r.db.WithContext(ctx).
		Model(cafe).
		Select("name", "description", "url", "address", "city_code", "image_url").
		Updates(cafe)
	if err := result.Error; err != nil {
		r.log.Failed(ctx, "update", err)
		if isForeignKeyError(err) {
			return models.NewValidationError("Unknown city")
		}
		return models.NewInternalError(err)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Cafe", cafe.ID)
	}
	cache.InvalidateCafe(ctx, cafe.ID)
	r.log.Updated(ctx, slog.Uint64("id", uint64(cafe.ID)))
	return nil
}

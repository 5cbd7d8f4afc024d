package repository

import (
	"context"
	"errors"

	"cafehub/internal/cache"
	"cafehub/internal/models"

	"gorm.io/gorm"
)

// CityRepository reads the city reference data.
type CityRepository interface {
	List(ctx context.Context) ([]models.City, error)
	GetByCode(ctx context.Context, code string) (*models.City, error)
	Exists(ctx context.Context, code string) (bool, error)
}

type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository returns a new CityRepository implementation.
func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

// List returns all cities ordered by name.
func (r *cityRepository) List(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	err := cache.Aside(ctx, cache.CitiesKey, &cities, cache.CitiesTTL, func() error {
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepository) GetByCode(ctx context.Context, code string) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("City", code)
		}
		return nil, models.NewInternalError(err)
	}
	return &city, nil
}

func (r *cityRepository) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.City{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

package service

import (
	"context"

	"cafehub/internal/models"
	"cafehub/internal/repository"
)

type CafeService struct {
	cafeRepo repository.CafeRepository
	cityRepo repository.CityRepository
	likeRepo repository.LikeRepository
}

// CafeInput carries an already validated add/edit cafe form.
type CafeInput struct {
	Name        string
	Description string
	URL         string
	Address     string
	CityCode    string
	ImageURL    string
}

func NewCafeService(cafeRepo repository.CafeRepository, cityRepo repository.CityRepository, likeRepo repository.LikeRepository) *CafeService {
	return &CafeService{cafeRepo: cafeRepo, cityRepo: cityRepo, likeRepo: likeRepo}
}

func (s *CafeService) ListCafes(ctx context.Context) ([]models.Cafe, error) {
	return s.cafeRepo.List(ctx)
}

// GetCafe returns the cafe. When userID is set, Liked reflects that user's like.
func (s *CafeService) GetCafe(ctx context.Context, id, userID uint) (*models.Cafe, error) {
	cafe, err := s.cafeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != 0 {
		liked, err := s.likeRepo.IsLiked(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		cafe.Liked = liked
	}
	return cafe, nil
}

func (s *CafeService) CreateCafe(ctx context.Context, userID uint, in CafeInput) (*models.Cafe, error) {
	if userID == 0 {
		return nil, models.ErrNotLoggedIn
	}
	if err := s.checkCity(ctx, in.CityCode); err != nil {
		return nil, err
	}

	cafe := &models.Cafe{}
	applyCafeInput(cafe, in)
	if err := s.cafeRepo.Create(ctx, cafe); err != nil {
		return nil, err
	}
	return s.cafeRepo.GetByID(ctx, cafe.ID)
}

// UpdateCafe edits the existing row in place.
func (s *CafeService) UpdateCafe(ctx context.Context, userID, id uint, in CafeInput) (*models.Cafe, error) {
	if userID == 0 {
		return nil, models.ErrNotLoggedIn
	}
	cafe, err := s.cafeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCity(ctx, in.CityCode); err != nil {
		return nil, err
	}

	applyCafeInput(cafe, in)
	cafe.City = nil
	if err := s.cafeRepo.Update(ctx, cafe); err != nil {
		return nil, err
	}
	return s.cafeRepo.GetByID(ctx, id)
}

func (s *CafeService) ListCities(ctx context.Context) ([]models.City, error) {
	return s.cityRepo.List(ctx)
}

func (s *CafeService) checkCity(ctx context.Context, code string) error {
	ok, err := s.cityRepo.Exists(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewFieldValidationError("Unknown city", map[string]string{"city_code": "Unknown city"})
	}
	return nil
}

func applyCafeInput(cafe *models.Cafe, in CafeInput) {
	cafe.Name = in.Name
	cafe.Description = in.Description
	cafe.URL = in.URL
	cafe.Address = in.Address
	cafe.CityCode = in.CityCode
	cafe.ImageURL = in.ImageURL
	if cafe.ImageURL == "" {
		cafe.ImageURL = models.DefaultCafeImageURL
	}
}

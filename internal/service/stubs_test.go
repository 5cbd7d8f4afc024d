package service

import (
	"context"

	"cafehub/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateProfileFn func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, user *models.User) error {
	return s.updateProfileFn(ctx, user)
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	isLikedFn    func(context.Context, uint, uint) (bool, error)
	likeFn       func(context.Context, uint, uint) error
	unlikeFn     func(context.Context, uint, uint) error
	likedCafesFn func(context.Context, uint) ([]models.Cafe, error)
}

func (s *likeRepoStub) IsLiked(ctx context.Context, userID, cafeID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, cafeID)
}
func (s *likeRepoStub) Like(ctx context.Context, userID, cafeID uint) error {
	return s.likeFn(ctx, userID, cafeID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID, cafeID uint) error {
	return s.unlikeFn(ctx, userID, cafeID)
}
func (s *likeRepoStub) LikedCafes(ctx context.Context, userID uint) ([]models.Cafe, error) {
	return s.likedCafesFn(ctx, userID)
}

// cafeRepoStub is a stub for repository.CafeRepository.
type cafeRepoStub struct {
	listFn    func(context.Context) ([]models.Cafe, error)
	getByIDFn func(context.Context, uint) (*models.Cafe, error)
	createFn  func(context.Context, *models.Cafe) error
	updateFn  func(context.Context, *models.Cafe) error
}

func (s *cafeRepoStub) List(ctx context.Context) ([]models.Cafe, error) {
	return s.listFn(ctx)
}
func (s *cafeRepoStub) GetByID(ctx context.Context, id uint) (*models.Cafe, error) {
	return s.getByIDFn(ctx, id)
}
func (s *cafeRepoStub) Create(ctx context.Context, cafe *models.Cafe) error {
	return s.createFn(ctx, cafe)
}
func (s *cafeRepoStub) Update(ctx context.Context, cafe *models.Cafe) error {
	return s.updateFn(ctx, cafe)
}

// cityRepoStub is a stub for repository.CityRepository.
type cityRepoStub struct {
	listFn      func(context.Context) ([]models.City, error)
	getByCodeFn func(context.Context, string) (*models.City, error)
	existsFn    func(context.Context, string) (bool, error)
}

func (s *cityRepoStub) List(ctx context.Context) ([]models.City, error) {
	return s.listFn(ctx)
}
func (s *cityRepoStub) GetByCode(ctx context.Context, code string) (*models.City, error) {
	return s.getByCodeFn(ctx, code)
}
func (s *cityRepoStub) Exists(ctx context.Context, code string) (bool, error) {
	return s.existsFn(ctx, code)
}

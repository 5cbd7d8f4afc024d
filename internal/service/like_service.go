package service

import (
	"context"

	"cafehub/internal/models"
	"cafehub/internal/observability"
	"cafehub/internal/repository"
)

// LikeService toggles cafe likes for the current user. A userID of 0 means nobody is logged in.
type LikeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

func (s *LikeService) IsLiked(ctx context.Context, userID, cafeID uint) (bool, error) {
	if userID == 0 {
		return false, models.ErrNotLoggedIn
	}
	return s.likeRepo.IsLiked(ctx, userID, cafeID)
}

// Like is idempotent: liking an already liked cafe succeeds and leaves one like.
func (s *LikeService) Like(ctx context.Context, userID, cafeID uint) error {
	if userID == 0 {
		return models.ErrNotLoggedIn
	}
	if err := s.likeRepo.Like(ctx, userID, cafeID); err != nil {
		return err
	}
	observability.RecordLike("like")
	return nil
}

// Unlike is idempotent: unliking a cafe that is not liked succeeds.
func (s *LikeService) Unlike(ctx context.Context, userID, cafeID uint) error {
	if userID == 0 {
		return models.ErrNotLoggedIn
	}
	if err := s.likeRepo.Unlike(ctx, userID, cafeID); err != nil {
		return err
	}
	observability.RecordLike("unlike")
	return nil
}

func (s *LikeService) LikedCafes(ctx context.Context, userID uint) ([]models.Cafe, error) {
	if userID == 0 {
		return nil, models.ErrNotLoggedIn
	}
	return s.likeRepo.LikedCafes(ctx, userID)
}

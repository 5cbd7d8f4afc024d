package repository

import (
	"context"
	"log/slog"

	"cafehub/internal/models"
	"cafehub/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository stores which users liked which cafes.
type LikeRepository interface {
	IsLiked(ctx context.Context, userID, cafeID uint) (bool, error)
	Like(ctx context.Context, userID, cafeID uint) error
	Unlike(ctx context.Context, userID, cafeID uint) error
	LikedCafes(ctx context.Context, userID uint) ([]models.Cafe, error)
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("likes")}
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, cafeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the pair with ON CONFLICT DO NOTHING, so repeated or concurrent
// likes leave exactly one row.
func (r *likeRepository) Like(ctx context.Context, userID, cafeID uint) (err error) {
	ctx, span := observability.StartRepoSpan(ctx, "likes", "create")
	defer func() { observability.EndSpan(span, err) }()

	like := models.Like{UserID: userID, CafeID: cafeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&like)
	if dbErr := result.Error; dbErr != nil {
		if isForeignKeyError(dbErr) {
			return r.missingParent(ctx, userID, cafeID)
		}
		r.log.Failed(ctx, "create", dbErr)
		return models.NewInternalError(dbErr)
	}
	if result.RowsAffected > 0 {
		r.log.Created(ctx, slog.Uint64("user_id", uint64(userID)), slog.Uint64("cafe_id", uint64(cafeID)))
	}
	return nil
}

// missingParent reports which side of a rejected like does not exist.
// A missing cafe wins when both are gone.
func (r *likeRepository) missingParent(ctx context.Context, userID, cafeID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Cafe{}).Where("id = ?", cafeID).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Cafe", cafeID)
	}
	return models.NewNotFoundError("User", userID)
}

// Unlike removes the pair. Removing a pair that does not exist is not an error.
func (r *likeRepository) Unlike(ctx context.Context, userID, cafeID uint) (err error) {
	ctx, span := observability.StartRepoSpan(ctx, "likes", "delete")
	defer func() { observability.EndSpan(span, err) }()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Delete(&models.Like{})
	if dbErr := result.Error; dbErr != nil {
		r.log.Failed(ctx, "delete", dbErr)
		return models.NewInternalError(dbErr)
	}
	if result.RowsAffected > 0 {
		r.log.Deleted(ctx, slog.Uint64("user_id", uint64(userID)), slog.Uint64("cafe_id", uint64(cafeID)))
	}
	return nil
}

func (r *likeRepository) LikedCafes(ctx context.Context, userID uint) ([]models.Cafe, error) {
	var cafes []models.Cafe
	if err := r.db.WithContext(ctx).
		Joins("JOIN likes ON likes.cafe_id = cafes.id").
		Where("likes.user_id = ?", userID).
		Preload("City").
		Order("cafes.name ASC").
		Find(&cafes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range cafes {
		cafes[i].Liked = true
	}
	return cafes, nil
}

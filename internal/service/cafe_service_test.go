package service

import (
	"context"
	"testing"

	"cafehub/internal/models"
	"cafehub/internal/repository"
	"cafehub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCafeService(db *gorm.DB) *CafeService {
	return NewCafeService(
		repository.NewCafeRepository(db),
		repository.NewCityRepository(db),
		repository.NewLikeRepository(db),
	)
}

func TestCafeService_CreateRequiresLogin(t *testing.T) {
	svc := NewCafeService(&cafeRepoStub{}, &cityRepoStub{}, &likeRepoStub{})

	_, err := svc.CreateCafe(context.Background(), 0, CafeInput{Name: "x"})
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)

	_, err = svc.UpdateCafe(context.Background(), 0, 1, CafeInput{Name: "x"})
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)
}

func TestCafeService_UnknownCity(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCafeService(db)

	_, err := svc.CreateCafe(context.Background(), 1, CafeInput{Name: "Ghost", Address: "1 Nowhere", CityCode: "SF"})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&models.Cafe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCafeService_CreateUpdateAndLikedFlag(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCafeService(db)
	ctx := context.Background()
	testutil.SeedCity(t, db, "sf", "San Francisco", "CA")
	testutil.SeedCity(t, db, "oak", "Oakland", "CA")
	user := testutil.SeedUser(t, db, "hank", "hash")

	cafe, err := svc.CreateCafe(ctx, user.ID, CafeInput{Name: "Four Barrel", Address: "375 Valencia St", CityCode: "sf"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCafeImageURL, cafe.ImageURL)
	assert.Equal(t, "San Francisco, CA", cafe.CityState())

	updated, err := svc.UpdateCafe(ctx, user.ID, cafe.ID, CafeInput{
		Name:     "Four Barrel Coffee",
		Address:  "375 Valencia St",
		CityCode: "oak",
		ImageURL: "https://example.com/fb.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, cafe.ID, updated.ID)
	assert.Equal(t, "Four Barrel Coffee", updated.Name)
	assert.Equal(t, "Oakland, CA", updated.CityState())

	cafes, err := svc.ListCafes(ctx)
	require.NoError(t, err)
	assert.Len(t, cafes, 1)

	got, err := svc.GetCafe(ctx, cafe.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, got.Liked)

	require.NoError(t, repository.NewLikeRepository(db).Like(ctx, user.ID, cafe.ID))
	got, err = svc.GetCafe(ctx, cafe.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Liked)

	got, err = svc.GetCafe(ctx, cafe.ID, 0)
	require.NoError(t, err)
	assert.False(t, got.Liked)

	cities, err := svc.ListCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "oak", cities[0].Code)
}

func TestCafeService_GetMissing(t *testing.T) {
	svc := NewCafeService(&cafeRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Cafe, error) {
			return nil, models.NewNotFoundError("Cafe", id)
		},
	}, &cityRepoStub{}, &likeRepoStub{})

	_, err := svc.GetCafe(context.Background(), 42, 0)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

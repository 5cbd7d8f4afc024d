package repository

import (
	"context"
	"testing"

	"cafehub/internal/models"
	"cafehub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateUsernameConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "a@example.com", FirstName: "A", LastName: "L", HashedPassword: "x"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Username: "alice", Email: "b@example.com", FirstName: "B", LastName: "L", HashedPassword: "y"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	testutil.SeedUser(t, db, "Bob", "hash")

	user, err := repo.GetByUsername(ctx, "Bob")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "hash", user.HashedPassword)
	assert.Equal(t, models.DefaultUserImageURL, user.ImageURL)

	// Lookups are exact.
	user, err = repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_UpdateProfileKeepsPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seeded := testutil.SeedUser(t, db, "carol", "secret-hash")

	err := repo.UpdateProfile(ctx, &models.User{
		ID:        seeded.ID,
		Email:     "carol@new.example.com",
		FirstName: "Carol",
		LastName:  "King",
		ImageURL:  models.DefaultUserImageURL,
	})
	require.NoError(t, err)

	reloaded, err := repo.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol@new.example.com", reloaded.Email)
	assert.Equal(t, "Carol King", reloaded.FullName())
	assert.Equal(t, "secret-hash", reloaded.HashedPassword)

	err = repo.UpdateProfile(ctx, &models.User{ID: 999, Email: "x@example.com", FirstName: "X", LastName: "Y"})
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestCafeRepository_UnknownCityFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCafeRepository(db)
	ctx := context.Background()

	cafe := &models.Cafe{Name: "Ghost", Address: "1 Nowhere", CityCode: "SF"}
	err := repo.Create(ctx, cafe)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&models.Cafe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCafeRepository_CreateGetUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCafeRepository(db)
	ctx := context.Background()
	testutil.SeedCity(t, db, "sf", "San Francisco", "CA")
	testutil.SeedCity(t, db, "berk", "Berkeley", "CA")

	cafe := &models.Cafe{Name: "Bernie's", Address: "3966 24th St", CityCode: "sf"}
	require.NoError(t, repo.Create(ctx, cafe))
	require.NotZero(t, cafe.ID)

	got, err := repo.GetByID(ctx, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCafeImageURL, got.ImageURL)
	assert.Equal(t, "San Francisco, CA", got.CityState())

	got.Name = "Bernie's Coffee"
	got.CityCode = "berk"
	require.NoError(t, repo.Update(ctx, got))

	var count int64
	require.NoError(t, db.Model(&models.Cafe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "edit must not insert a new row")

	reloaded, err := repo.GetByID(ctx, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bernie's Coffee", reloaded.Name)
	assert.Equal(t, "Berkeley, CA", reloaded.CityState())

	got.CityCode = "nyc"
	err = repo.Update(ctx, got)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

	_, err = repo.GetByID(ctx, 12345)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestCafeRepository_ListOrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCafeRepository(db)
	testutil.SeedCity(t, db, "sf", "San Francisco", "CA")
	testutil.SeedCafe(t, db, "Zeitgeist", "sf")
	testutil.SeedCafe(t, db, "Arlequin", "sf")

	cafes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cafes, 2)
	assert.Equal(t, "Arlequin", cafes[0].Name)
	require.NotNil(t, cafes[0].City)
	assert.Equal(t, "San Francisco", cafes[0].City.Name)
}

func TestCityRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCityRepository(db)
	ctx := context.Background()
	testutil.SeedCity(t, db, "sf", "San Francisco", "CA")
	testutil.SeedCity(t, db, "berk", "Berkeley", "CA")

	cities, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Berkeley", cities[0].Name)

	ok, err := repo.Exists(ctx, "sf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "SF")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByCode(ctx, "la")
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestLikeRepository_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	testutil.SeedCity(t, db, "sf", "San Francisco", "CA")
	cafe := testutil.SeedCafe(t, db, "Sightglass", "sf")
	user := testutil.SeedUser(t, db, "dave", "hash")

	liked, err := repo.IsLiked(ctx, user.ID, cafe.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.Like(ctx, user.ID, cafe.ID))
	require.NoError(t, repo.Like(ctx, user.ID, cafe.ID))

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	liked, err = repo.IsLiked(ctx, user.ID, cafe.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	cafes, err := repo.LikedCafes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Sightglass", cafes[0].Name)
	assert.True(t, cafes[0].Liked)

	require.NoError(t, repo.Unlike(ctx, user.ID, cafe.ID))
	require.NoError(t, repo.Unlike(ctx, user.ID, cafe.ID))

	liked, err = repo.IsLiked(ctx, user.ID, cafe.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeRepository_UnknownCafe(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLikeRepository(db)
	user := testutil.SeedUser(t, db, "erin", "hash")

	err := repo.Like(context.Background(), user.ID, 404)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	assert.Equal(t, "Cafe with ID 404 not found", err.Error())
}

func TestLikeRepository_UnknownUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLikeRepository(db)
	testutil.SeedCity(t, db, "sf", "San Francisco", "CA")
	cafe := testutil.SeedCafe(t, db, "Ritual", "sf")

	err := repo.Like(context.Background(), 9999, cafe.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	assert.Equal(t, "User with ID 9999 not found", err.Error())

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

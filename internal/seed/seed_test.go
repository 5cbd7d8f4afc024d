package seed

import (
	"testing"

	"cafehub/internal/models"
	"cafehub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCitiesIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, Cities(db))
	require.NoError(t, Cities(db))

	var count int64
	require.NoError(t, db.Model(&models.City{}).Count(&count).Error)
	assert.Equal(t, int64(len(BuiltInCities)), count)

	var sf models.City
	require.NoError(t, db.First(&sf, "code = ?", "sf").Error)
	assert.Equal(t, "San Francisco", sf.Name)
}

func TestFactory(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, Cities(db))
	f := NewFactory(db, 42)

	users, err := f.Users(3)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.NotEmpty(t, u.Username)
		assert.LessOrEqual(t, len(u.Username), 30)
		assert.NotEmpty(t, u.Description)
		assert.False(t, u.Admin)
	}
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].HashedPassword), []byte(DefaultPassword)))
	assert.NotEqual(t, users[0].HashedPassword, users[1].HashedPassword, "each user gets its own salt")

	cafes, err := f.Cafes(4)
	require.NoError(t, err)
	require.Len(t, cafes, 4)
	assert.Equal(t, models.DefaultCafeImageURL, cafes[0].ImageURL)

	n, err := f.Likes(users, cafes, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	// Likes again adds nothing.
	n, err = f.Likes(users, cafes, 1.0)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, f.ClearAll())
	var count int64
	require.NoError(t, db.Model(&models.Cafe{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.City{}).Count(&count).Error)
	assert.Equal(t, int64(len(BuiltInCities)), count)
}

func TestCafesNeedCities(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewFactory(db, 1).Cafes(1)
	assert.Error(t, err)
}

func TestParseCities(t *testing.T) {
	cities, err := ParseCities([]byte(`
cities:
  - code: " AUS "
    name: Austin
    state: TX
  - {code: den, name: Denver, state: CO}
`))
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, models.City{Code: "aus", Name: "Austin", State: "TX"}, cities[0])
	assert.Equal(t, "den", cities[1].Code)
}

func TestParseCities_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "cities:\n  - {code: aus, state: TX}\n"},
		{"duplicate code", "cities:\n  - {code: aus, name: Austin}\n  - {code: AUS, name: Austin}\n"},
		{"not yaml", "cities: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCities([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestUpsertCities_RefreshesExisting(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, Cities(db))

	require.NoError(t, UpsertCities(db, []models.City{
		{Code: "sf", Name: "San Francisco City", State: "CA"},
		{Code: "aus", Name: "Austin", State: "TX"},
	}))

	var sf models.City
	require.NoError(t, db.First(&sf, "code = ?", "sf").Error)
	assert.Equal(t, "San Francisco City", sf.Name)

	var count int64
	require.NoError(t, db.Model(&models.City{}).Count(&count).Error)
	assert.Equal(t, int64(len(BuiltInCities)+1), count)
	assert.NoError(t, UpsertCities(db, nil))
}

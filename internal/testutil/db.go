// Package testutil provides shared test fixtures for backend tests.
package testutil

import (
	"testing"

	"cafehub/internal/database"
	"cafehub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database with foreign keys enforced.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

// SeedCity inserts a city and fails the test on error.
func SeedCity(t *testing.T, db *gorm.DB, code, name, state string) *models.City {
	t.Helper()
	city := &models.City{Code: code, Name: name, State: state}
	if err := db.Create(city).Error; err != nil {
		t.Fatalf("Failed to seed city %s: %v", code, err)
	}
	return city
}

// SeedCafe inserts a cafe in cityCode and fails the test on error.
func SeedCafe(t *testing.T, db *gorm.DB, name, cityCode string) *models.Cafe {
	t.Helper()
	cafe := &models.Cafe{
		Name:        name,
		Description: "Good coffee",
		URL:         "https://example.com/" + name,
		Address:     "123 Main St",
		CityCode:    cityCode,
	}
	if err := db.Create(cafe).Error; err != nil {
		t.Fatalf("Failed to seed cafe %s: %v", name, err)
	}
	return cafe
}

// SeedUser inserts a user with the given bcrypt hash and fails the test on error.
func SeedUser(t *testing.T, db *gorm.DB, username, hashedPassword string) *models.User {
	t.Helper()
	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		FirstName:      "Test",
		LastName:       "User",
		HashedPassword: hashedPassword,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

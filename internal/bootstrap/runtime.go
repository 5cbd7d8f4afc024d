// Package bootstrap wires the database, Redis and reference data before the server starts.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cafehub/internal/cache"
	"cafehub/internal/config"
	"cafehub/internal/database"
	"cafehub/internal/middleware"
	"cafehub/internal/models"
	"cafehub/internal/seed"
	"cafehub/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedCities bool
}

// InitRuntime connects to DB and Redis and optionally seeds the city reference data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.ConnectOptional(context.Background(), cfg.RedisURL)

	if opts.SeedCities {
		if err := seed.Cities(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed cities: %w", err)
		}
	}

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	return db, r, nil
}

// ensureDevAdmin creates or promotes the configured admin account in development.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "cafe_admin"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@cafehub.local"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	candidate, err := service.NewAuthService(nil, cfg.BcryptCost).BuildCandidate(service.RegisterInput{
		Username:  username,
		Email:     email,
		FirstName: "Cafehub",
		LastName:  "Admin",
		Password:  password,
		Admin:     true,
	})
	if err != nil {
		return fmt.Errorf("build admin account: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		result := tx.Where("username = ?", username).Limit(1).Find(&admin)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return tx.Create(candidate).Error
		}
		return tx.Model(&models.User{}).Where("id = ?", admin.ID).Update("admin", true).Error
	}); err != nil {
		return err
	}

	middleware.Logger.Info("development admin ensured", slog.String("username", username))
	return nil
}

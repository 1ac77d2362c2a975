// Package bootstrap wires the runtime dependencies shared by the server and CLI commands.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoJobs bool
}

// InitRuntime connects to the database and Redis, then applies development
// bootstrap steps. The Redis client is nil when Redis is disabled or unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	if opts.SeedDemoJobs {
		n, err := seed.DemoJobs(db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo jobs: %w", err)
		}
		if n > 0 {
			middleware.Logger.Info("seeded demo jobs", "count", n)
		}
	}

	return db, r, nil
}

func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@jobboard.local"
	}
	name := strings.TrimSpace(cfg.DevAdminName)
	if name == "" {
		name = "Board Admin"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return errors.New("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	var admin models.User
	findErr := db.Where("email = ?", email).First(&admin).Error
	switch {
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin = models.User{Email: email, Password: string(hash), Name: name, Role: models.RoleAdmin}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	case findErr != nil:
		return findErr
	case admin.Role != models.RoleAdmin:
		if err := db.Model(&admin).Update("role", models.RoleAdmin).Error; err != nil {
			return err
		}
	}

	middleware.Logger.Info("development admin bootstrap ensured", "email", email, "user_id", admin.ID)
	return nil
}

// Package main provides admin management utilities for the job board.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/validation"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin promote <user_id|email>   - Promote user to admin")
	fmt.Println("  go run ./cmd/admin demote <user_id|email>    - Demote admin to user")
	fmt.Println("  go run ./cmd/admin list-admins               - List all admins")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Role changes must reach the server's shared cache, not just this process.
	cache.InitRedis(cfg.RedisURL)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	switch command := os.Args[1]; command {
	case "promote", "demote":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		role := models.RoleAdmin
		if command == "demote" {
			role = models.RoleUser
		}
		if err := setRole(ctx, users, os.Args[2], role); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

	case "list-admins":
		listAdmins(ctx, users)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

// lookup resolves a numeric ID or an email address to a user.
func lookup(ctx context.Context, users repository.UserRepository, ref string) (*models.User, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return users.GetByID(ctx, uint(id))
	}
	user, err := users.GetByEmail(ctx, validation.NormalizeEmail(ref))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", ref)
	}
	return user, nil
}

func setRole(ctx context.Context, users repository.UserRepository, ref, role string) error {
	user, err := lookup(ctx, users, ref)
	if err != nil {
		return err
	}

	if user.Role == role {
		fmt.Printf("User %s (ID: %d) already has role %q\n", user.Email, user.ID, role)
		return nil
	}

	if err := users.UpdateRole(ctx, user.ID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	fmt.Printf("Updated %s (ID: %d) to role %q\n", user.Email, user.ID, role)
	return nil
}

func listAdmins(ctx context.Context, users repository.UserRepository) {
	admins, err := users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Printf("Admins (%d):\n", len(admins))
	for _, admin := range admins {
		fmt.Printf("  %d  %-30s %s\n", admin.ID, admin.Email, admin.Name)
	}
}

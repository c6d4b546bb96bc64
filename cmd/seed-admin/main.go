// seed-admin creates or updates the admin console user from env.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//   SEED_ADMIN_EMAIL=... SEED_ADMIN_NAME=... SEED_ADMIN_PASSWORD=... \
//   go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/models"
	"bitbucket.org/lfkitchen/costing_backend/utils"
)

func main() {
	_ = godotenv.Load()

	email := os.Getenv("SEED_ADMIN_EMAIL")
	name := os.Getenv("SEED_ADMIN_NAME")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
		os.Exit(1)
	}
	if name == "" {
		name = "Admin"
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	var existing models.User
	err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		if _, err := models.CreateUser(ctx, email, name, password, models.UserRoleAdmin); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: email=%q\n", email)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(map[string]any{
		"password":  string(hashed),
		"name":      name,
		"is_active": utils.NewTrue(),
		"role":      models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user: email=%q\n", email)
}

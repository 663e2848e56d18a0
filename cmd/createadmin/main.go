// Package main provisions an administrator account for the admin dashboard.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/technest/admin-dashboard/config"
	"github.com/technest/admin-dashboard/internal/application/usecase/auth"
	"github.com/technest/admin-dashboard/internal/infra/db"
	"github.com/technest/admin-dashboard/internal/integration/adapters"
	"github.com/technest/admin-dashboard/internal/integration/persistence"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "administrator email")
	name := flag.String("name", "", "administrator display name")
	verified := flag.Bool("verified", true, "mark the email as verified")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	password := os.Getenv("ADMIN_PASSWORD")
	if *email == "" || password == "" {
		slog.Error("Usage: ADMIN_PASSWORD=... createadmin -email admin@example.com [-name Name] [-verified=false]")
		os.Exit(2)
	}

	cfg := config.Load()
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	adminRepo := persistence.NewAdminRepository(persistence.NewDocumentRepository(database.DB()))
	useCase := auth.NewCreateAdminUseCase(adminRepo, adapters.NewPasswordService(cfg.JWT.BcryptCost))

	admin, err := useCase.Execute(ctx, auth.CreateAdminInput{
		Email:         *email,
		Name:          *name,
		Password:      password,
		EmailVerified: *verified,
	})
	if err != nil {
		slog.Error("Failed to create admin", "error", err)
		os.Exit(1)
	}

	slog.Info("Administrator saved", "id", admin.ID, "email", admin.Email, "verified", admin.EmailVerified)
}

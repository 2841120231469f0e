// cmd/seed wipes and repopulates the database with demo data: an admin,
// a regular user, the Basketball sport, and a capacity-one class with a
// schedule slot.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sportscomplex/class-enrollment/internal/config"
	"github.com/sportscomplex/class-enrollment/internal/database"
	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
	"github.com/sportscomplex/class-enrollment/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed complete")
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	// Clear tables; order matters because of the foreign keys.
	for _, table := range []string{"applications", "schedules", "classes", "users", "sports"} {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return err
		}
	}

	userSvc := service.NewUserService(repository.NewUserRepository(pool), cfg.BcryptCost)
	sportRepo := repository.NewSportRepository(pool)
	classRepo := repository.NewClassRepository(pool)

	admin, err := userSvc.Create(ctx, model.CreateUserRequest{
		Email:    "admin@example.com",
		Name:     "Test",
		Surname:  "Test",
		Password: "Password_$123",
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return err
	}
	slog.Info("created admin", "id", admin.ID, "email", admin.Email)

	user, err := userSvc.Create(ctx, model.CreateUserRequest{
		Email:    "user@example.com",
		Name:     "Test",
		Surname:  "Test",
		Password: "Password_$123",
		Role:     model.RoleUser,
	})
	if err != nil {
		return err
	}
	slog.Info("created user", "id", user.ID, "email", user.Email)

	sport, err := sportRepo.Create(ctx, model.CreateSportRequest{
		Name: "Basketball",
		Type: "indoor",
	})
	if err != nil {
		return err
	}

	cls, err := classRepo.Create(ctx, model.CreateClassRequest{
		Description: "Basic Basketball",
		Duration:    60,
		Capacity:    1,
		SportID:     sport.ID,
		Schedules: []model.ScheduleSlot{
			{Date: "2026-10-10", StartTime: "18:00", EndTime: "19:30"},
		},
	})
	if err != nil {
		return err
	}
	slog.Info("created class", "id", cls.ID, "sport", sport.Name)

	return nil
}

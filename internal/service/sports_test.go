package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
)

func TestSportUniqueness(t *testing.T) {
	_, sports, _, _, _ := newTestServices()
	ctx := context.Background()

	if _, err := sports.Create(ctx, model.CreateSportRequest{Name: "Table Tennis", Type: "indoor"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same (name, type) pair is rejected.
	_, err := sports.Create(ctx, model.CreateSportRequest{Name: "Table Tennis", Type: "indoor"})
	if !errors.Is(err, repository.ErrDuplicateSport) {
		t.Fatalf("duplicate create: err = %v, want ErrDuplicateSport", err)
	}

	// Same name with a different type is a distinct sport.
	if _, err := sports.Create(ctx, model.CreateSportRequest{Name: "Table Tennis", Type: "outdoor"}); err != nil {
		t.Fatalf("same name, different type: %v", err)
	}
}

func TestSportUpdateExcludesSelf(t *testing.T) {
	_, sports, _, _, _ := newTestServices()
	ctx := context.Background()

	s, err := sports.Create(ctx, model.CreateSportRequest{Name: "Squash", Type: "indoor"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := sports.Create(ctx, model.CreateSportRequest{Name: "Padel", Type: "indoor"})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}

	// Re-saving a sport under its own name is not a conflict.
	if _, err := sports.Update(ctx, s.ID, model.CreateSportRequest{
		Name: "Squash", Type: "indoor", Description: "updated",
	}); err != nil {
		t.Fatalf("update keeping name: %v", err)
	}

	// Renaming onto another sport's (name, type) is.
	_, err = sports.Update(ctx, other.ID, model.CreateSportRequest{Name: "Squash", Type: "indoor"})
	if !errors.Is(err, repository.ErrDuplicateSport) {
		t.Fatalf("update onto taken name: err = %v, want ErrDuplicateSport", err)
	}
}

func TestSportValidation(t *testing.T) {
	_, sports, _, _, _ := newTestServices()
	ctx := context.Background()

	if _, err := sports.Create(ctx, model.CreateSportRequest{Type: "indoor"}); err == nil {
		t.Fatal("create without name succeeded")
	}
	if _, err := sports.Create(ctx, model.CreateSportRequest{Name: "Chess"}); err == nil {
		t.Fatal("create without type succeeded")
	}
}

func TestDeleteSportGuard(t *testing.T) {
	_, sports, classes, _, _ := newTestServices()
	ctx := context.Background()

	sport := seedSport(t, sports)
	cls := seedClass(t, classes, sport.ID, 5)

	// Delete is vetoed while a class references the sport.
	if err := sports.Delete(ctx, sport.ID); !errors.Is(err, repository.ErrSportHasClasses) {
		t.Fatalf("delete with classes: err = %v, want ErrSportHasClasses", err)
	}

	if err := classes.Delete(ctx, cls.ID); err != nil {
		t.Fatalf("delete class: %v", err)
	}
	if err := sports.Delete(ctx, sport.ID); err != nil {
		t.Fatalf("delete after removing classes: %v", err)
	}
	if _, err := sports.Get(ctx, sport.ID); !errors.Is(err, repository.ErrSportNotFound) {
		t.Fatalf("get deleted sport: err = %v, want ErrSportNotFound", err)
	}
}

func TestDeleteSportNotFound(t *testing.T) {
	_, sports, _, _, _ := newTestServices()
	if err := sports.Delete(context.Background(), 42); !errors.Is(err, repository.ErrSportNotFound) {
		t.Fatalf("err = %v, want ErrSportNotFound", err)
	}
}

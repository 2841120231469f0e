package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
)

func TestUserCreate(t *testing.T) {
	_, _, _, users, _ := newTestServices()
	ctx := context.Background()

	u, err := users.Create(ctx, model.CreateUserRequest{
		Email:    "  Jane.Doe@Example.COM  ",
		Name:     "Jane",
		Surname:  "Doe",
		Password: "Password_$123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "jane.doe@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", u.Email)
	}
	if u.Role != model.RoleUser {
		t.Fatalf("role = %q, want default USER", u.Role)
	}
	if u.PasswordHash == "" || strings.Contains(u.PasswordHash, "Password_$123") {
		t.Fatal("password was not hashed")
	}

	// Same email is rejected.
	_, err = users.Create(ctx, model.CreateUserRequest{
		Email: "jane.doe@example.com", Name: "J", Surname: "D", Password: "Password_$123",
	})
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("duplicate email: err = %v, want ErrEmailTaken", err)
	}
}

func TestUserCreateValidation(t *testing.T) {
	_, _, _, users, _ := newTestServices()
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.CreateUserRequest
	}{
		{"bad email", model.CreateUserRequest{Email: "not-an-email", Name: "A", Surname: "B", Password: "Password_$123"}},
		{"short password", model.CreateUserRequest{Email: "a@b.com", Name: "A", Surname: "B", Password: "short"}},
		{"missing name", model.CreateUserRequest{Email: "a@b.com", Surname: "B", Password: "Password_$123"}},
		{"bad role", model.CreateUserRequest{Email: "a@b.com", Name: "A", Surname: "B", Password: "Password_$123", Role: "OWNER"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := users.Create(ctx, tc.req); err == nil {
				t.Fatal("create succeeded, want validation error")
			}
		})
	}
}

func TestUserUpdatePartial(t *testing.T) {
	_, _, _, users, _ := newTestServices()
	ctx := context.Background()

	u := seedUser(t, users, "a@example.com")

	got, err := users.Update(ctx, u.ID, model.UpdateUserRequest{Surname: "Renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Surname != "Renamed" {
		t.Fatalf("surname = %q, want Renamed", got.Surname)
	}
	if got.Email != "a@example.com" || got.Name != "Test" {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
}

// Self-deletion is rejected before any lookup, for any role.
func TestUserSelfDeletion(t *testing.T) {
	_, _, _, users, _ := newTestServices()
	ctx := context.Background()

	admin, err := users.Create(ctx, model.CreateUserRequest{
		Email: "admin@example.com", Name: "A", Surname: "D", Password: "Password_$123", Role: model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	if err := users.Delete(ctx, admin.ID, admin.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("self delete: err = %v, want ErrSelfDeletion", err)
	}
	// Even for an id that does not exist.
	if err := users.Delete(ctx, 77, 77); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("self delete of missing id: err = %v, want ErrSelfDeletion", err)
	}
}

// Deleting a user releases every seat the user held.
func TestUserDeleteCascadesApplications(t *testing.T) {
	_, sports, classes, users, _ := newTestServices()
	ctx := context.Background()

	cls := seedClass(t, classes, seedSport(t, sports).ID, 1)
	victim := seedUser(t, users, "victim@example.com")
	admin := seedUser(t, users, "admin@example.com")

	if _, err := classes.Register(ctx, cls.ID, victim.ID); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := users.Delete(ctx, victim.ID, admin.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	got, err := classes.Get(ctx, cls.ID)
	if err != nil {
		t.Fatalf("get class: %v", err)
	}
	if got.Occupancy != 0 {
		t.Fatalf("occupancy = %d, want 0 after cascade", got.Occupancy)
	}
}

func TestUserDeleteNotFound(t *testing.T) {
	_, _, _, users, _ := newTestServices()
	if err := users.Delete(context.Background(), 42, 1); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

// Package service implements business rules and orchestration between
// HTTP handlers and the repository layer: validation, uniqueness
// pre-checks, deletion guards, and the enrollment lifecycle.
package service

import (
	"context"
	"errors"

	"github.com/sportscomplex/class-enrollment/internal/model"
)

// Errors raised by service-level rules that never originate in the store.
var (
	ErrSelfDeletion       = errors.New("users cannot delete their own account")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SportStore is the persistence surface the services need for sports.
type SportStore interface {
	NameTypeExists(ctx context.Context, name, sportType string, excludeID int64) (bool, error)
	Create(ctx context.Context, req model.CreateSportRequest) (*model.Sport, error)
	GetByID(ctx context.Context, id int64) (*model.Sport, error)
	List(ctx context.Context) ([]model.Sport, error)
	Update(ctx context.Context, id int64, req model.CreateSportRequest) (*model.Sport, error)
	Delete(ctx context.Context, id int64) error
}

// ClassStore is the persistence surface the services need for classes.
type ClassStore interface {
	Create(ctx context.Context, req model.CreateClassRequest) (*model.Class, error)
	GetByID(ctx context.Context, id int64) (*model.Class, error)
	List(ctx context.Context, sportNames []string, take, skip int) (*model.ClassList, error)
	Update(ctx context.Context, id int64, req model.CreateClassRequest) (*model.Class, error)
	Delete(ctx context.Context, id int64) error
	CountBySport(ctx context.Context, sportID int64) (int, error)
}

// ScheduleStore is the persistence surface for standalone schedule slots.
type ScheduleStore interface {
	SlotExists(ctx context.Context, slot model.ScheduleSlot, classID, excludeID int64) (bool, error)
	Create(ctx context.Context, slot model.ScheduleSlot, classID int64) (*model.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore is the persistence surface for user accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// ApplicationStore is the persistence surface for enrollments. Enroll is
// the capacity allocator: it must admit at most capacity live
// applications per class regardless of concurrency.
type ApplicationStore interface {
	Enroll(ctx context.Context, classID, userID int64) (*model.Application, error)
	Unenroll(ctx context.Context, classID, userID int64) error
	ListByClass(ctx context.Context, classID int64) ([]model.Application, error)
	CountByClass(ctx context.Context, classID int64) (int, error)
}

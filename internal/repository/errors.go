// Package repository implements all database access for the enrollment
// system. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by the repositories. Services and handlers
// dispatch on these with errors.Is; raw pg errors never escape this layer
// for constraint and lock failures.
var (
	ErrSportNotFound       = errors.New("sport not found")
	ErrClassNotFound       = errors.New("class not found")
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")

	ErrClassFull       = errors.New("class is already full")
	ErrAlreadyEnrolled = errors.New("user is already registered for this class")

	ErrDuplicateSport    = errors.New("sport with this name and type already exists")
	ErrDuplicateSchedule = errors.New("schedule slot already exists for this class")
	ErrEmailTaken        = errors.New("email is already in use")

	ErrSportHasClasses      = errors.New("sport has associated classes")
	ErrClassHasApplications = errors.New("class has registered participants")

	// ErrLockTimeout means the class row lock could not be acquired within
	// the configured bound. The request may be retried.
	ErrLockTimeout = errors.New("timed out waiting for enrollment lock")
)

// Postgres error codes the backstop translation cares about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgLockNotAvailable    = "55P03"
)

// translatePgError converts constraint and lock errors raised by the store
// into the domain taxonomy. A unique violation here means a concurrent
// writer slipped past an application-level pre-check; the constraint is the
// authority of last resort, so the caller gets the same conflict error the
// pre-check would have produced.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "applications_user_class_uniq":
			return ErrAlreadyEnrolled
		case "sports_name_type_uniq":
			return ErrDuplicateSport
		case "schedules_slot_uniq":
			return ErrDuplicateSchedule
		case "users_email_key":
			return ErrEmailTaken
		}
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == "classes_sport_id_fkey" {
			return ErrSportHasClasses
		}
	case pgLockNotAvailable:
		return ErrLockTimeout
	}
	return err
}

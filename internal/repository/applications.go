package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportscomplex/class-enrollment/internal/model"
)

// ApplicationRepository handles persistence for enrollments. It owns the
// seat-admission algorithm, the only contended path in the system.
type ApplicationRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

// NewApplicationRepository constructs an ApplicationRepository.
// lockTimeout bounds how long Enroll waits on a contended class row.
func NewApplicationRepository(db *pgxpool.Pool, lockTimeout time.Duration) *ApplicationRepository {
	return &ApplicationRepository{db: db, lockTimeout: lockTimeout}
}

// Enroll performs a concurrency-safe registration inside a serialised
// transaction.
//
// A naive read-then-write sequence is broken under concurrency: two
// transactions for the last seat both read the same occupancy snapshot,
// both see a free seat, and both insert — overbooking the class. The fix
// is pessimistic locking: SELECT ... FOR UPDATE acquires a row-level
// exclusive lock on the class row, so concurrent Enroll calls for the
// same class are serialised and exactly one of them sees the last seat.
//
// Occupancy is always a live COUNT of application rows taken inside the
// same transaction as the admission decision. A denormalized seat counter
// would be a second source of truth that can drift; the count cannot.
//
// The unique index on (user_id, class_id) is the backstop: if a writer
// that bypasses this lock races an insert past the duplicate pre-check,
// the constraint violation is translated to ErrAlreadyEnrolled rather
// than leaking a raw storage error.
func (r *ApplicationRepository) Enroll(ctx context.Context, classID, userID int64) (*model.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Bound the wait on a contended class row; a holder stuck past this
	// surfaces as ErrLockTimeout, which the caller may retry.
	_, err = tx.Exec(ctx,
		fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("set lock timeout: %w", err)
	}

	// Step 1: acquire an exclusive row-level lock on the class.
	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM classes WHERE id = $1 FOR UPDATE`,
		classID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		if terr := translatePgError(err); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("lock class row: %w", err)
	}

	// Step 2: the candidate user must exist.
	var userExists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&userExists)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	// Step 3: reject duplicate enrollment.
	var alreadyEnrolled bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE user_id = $1 AND class_id = $2)`,
		userID, classID,
	).Scan(&alreadyEnrolled)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if alreadyEnrolled {
		return nil, ErrAlreadyEnrolled
	}

	// Step 4: guard the seat cap with a live count under the lock.
	var occupancy int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE class_id = $1`, classID,
	).Scan(&occupancy)
	if err != nil {
		return nil, fmt.Errorf("count occupancy: %w", err)
	}
	if occupancy >= capacity {
		return nil, ErrClassFull
	}

	// Step 5: create the application record.
	app := &model.Application{UserID: userID, ClassID: classID}
	err = tx.QueryRow(ctx,
		`INSERT INTO applications (user_id, class_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		app.UserID, app.ClassID,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if terr := translatePgError(err); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}

	// Step 6: commit — only now does any other transaction see the seat taken.
	if err := tx.Commit(ctx); err != nil {
		if terr := translatePgError(err); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return app, nil
}

// Unenroll removes the live application for (user, class). It frees a
// seat and therefore needs no class lock; a concurrent Enroll either
// sees the row before the delete commits or the seat after.
func (r *ApplicationRepository) Unenroll(ctx context.Context, classID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM applications WHERE class_id = $1 AND user_id = $2`,
		classID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ListByClass returns all live applications for a class with the
// enrolled user attached, oldest first.
func (r *ApplicationRepository) ListByClass(ctx context.Context, classID int64) ([]model.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, a.class_id, a.created_at, a.updated_at,
		        u.id, u.email, u.name, u.surname, u.role, u.created_at, u.updated_at
		 FROM applications a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.class_id = $1
		 ORDER BY a.created_at ASC`,
		classID,
	)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var app model.Application
		var u model.User
		if err := rows.Scan(&app.ID, &app.UserID, &app.ClassID, &app.CreatedAt, &app.UpdatedAt,
			&u.ID, &u.Email, &u.Name, &u.Surname, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		app.User = &u
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// CountByClass returns the live occupancy of a class. The deletion guard
// for classes reads this before allowing a delete.
func (r *ApplicationRepository) CountByClass(ctx context.Context, classID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE class_id = $1`, classID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportscomplex/class-enrollment/internal/model"
)

// ScheduleRepository handles persistence for standalone schedule slots.
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// SlotExists reports whether a live schedule with the exact same
// (date, start, end, class) tuple exists, ignoring excludeID when
// non-zero. The composite unique index backstops this check.
func (r *ScheduleRepository) SlotExists(ctx context.Context, slot model.ScheduleSlot, classID, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE date = $1 AND start_time = $2 AND end_time = $3
			  AND class_id = $4 AND id <> $5
		)`,
		slot.Date, slot.StartTime, slot.EndTime, classID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check schedule uniqueness: %w", err)
	}
	return exists, nil
}

// Create inserts a single schedule slot for a class.
func (r *ScheduleRepository) Create(ctx context.Context, slot model.ScheduleSlot, classID int64) (*model.Schedule, error) {
	s := &model.Schedule{
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		ClassID:   classID,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO schedules (date, start_time, end_time, class_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Date, s.StartTime, s.EndTime, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if terr := translatePgError(err); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("insert schedule: %w", err)
	}
	return s, nil
}

// Delete removes a schedule slot.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

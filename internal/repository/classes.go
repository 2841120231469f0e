package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportscomplex/class-enrollment/internal/model"
)

// ClassRepository handles persistence for classes and their schedule slots.
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a class and any initial schedule slots in one transaction.
func (r *ClassRepository) Create(ctx context.Context, req model.CreateClassRequest) (*model.Class, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	c := &model.Class{
		Description: req.Description,
		Duration:    req.Duration,
		Capacity:    req.Capacity,
		SportID:     req.SportID,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO classes (description, duration, capacity, sport_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Description, c.Duration, c.Capacity, c.SportID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}

	c.Schedules, err = insertSchedules(ctx, tx, c.ID, req.Schedules)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return c, nil
}

// insertSchedules adds slots for a class within tx. The composite unique
// index rejects duplicate slots slipping past the service pre-check.
func insertSchedules(ctx context.Context, tx pgx.Tx, classID int64, slots []model.ScheduleSlot) ([]model.Schedule, error) {
	var schedules []model.Schedule
	for _, slot := range slots {
		s := model.Schedule{
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			ClassID:   classID,
		}
		err := tx.QueryRow(ctx,
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
		schedules = append(schedules, s)
	}
	return schedules, nil
}

const classSelect = `
	SELECT c.id, c.description, c.duration, c.capacity, c.sport_id,
	       (SELECT COUNT(*) FROM applications a WHERE a.class_id = c.id) AS occupancy,
	       c.created_at, c.updated_at
	FROM classes c`

// GetByID returns a class with its live occupancy and schedule slots, or
// ErrClassNotFound.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	var c model.Class
	err := r.db.QueryRow(ctx, classSelect+` WHERE c.id = $1`, id).Scan(
		&c.ID, &c.Description, &c.Duration, &c.Capacity, &c.SportID,
		&c.Occupancy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}

	c.Schedules, err = r.schedulesForClass(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) schedulesForClass(ctx context.Context, classID int64) ([]model.Schedule, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date::text, start_time, end_time, class_id, created_at, updated_at
		 FROM schedules
		 WHERE class_id = $1
		 ORDER BY date, start_time`,
		classID,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.ClassID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// List returns classes filtered by sport name, newest first, with the
// total row count for pagination.
func (r *ClassRepository) List(ctx context.Context, sportNames []string, take, skip int) (*model.ClassList, error) {
	query := classSelect + `
	JOIN sports s ON s.id = c.sport_id`
	args := []any{take, skip}
	if len(sportNames) > 0 {
		query += ` WHERE s.name = ANY($3)`
		args = append(args, sportNames)
	}
	query += `
	ORDER BY c.created_at DESC
	LIMIT $1 OFFSET $2`

	countQuery := `SELECT COUNT(*) FROM classes c JOIN sports s ON s.id = c.sport_id`
	var countArgs []any
	if len(sportNames) > 0 {
		countQuery += ` WHERE s.name = ANY($1)`
		countArgs = append(countArgs, sportNames)
	}

	list := &model.ClassList{Data: []model.Class{}}
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&list.Total); err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Description, &c.Duration, &c.Capacity, &c.SportID,
			&c.Occupancy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		list.Data = append(list.Data, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list.Data {
		list.Data[i].Schedules, err = r.schedulesForClass(ctx, list.Data[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Update rewrites a class's fields. When slots are provided they replace
// the class's existing schedule set in the same transaction.
func (r *ClassRepository) Update(ctx context.Context, id int64, req model.CreateClassRequest) (*model.Class, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	c := &model.Class{
		ID:          id,
		Description: req.Description,
		Duration:    req.Duration,
		Capacity:    req.Capacity,
		SportID:     req.SportID,
	}
	err = tx.QueryRow(ctx,
		`UPDATE classes
		 SET description = $2, duration = $3, capacity = $4, sport_id = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		id, c.Description, c.Duration, c.Capacity, c.SportID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("update class: %w", err)
	}

	if len(req.Schedules) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE class_id = $1`, id); err != nil {
			return nil, fmt.Errorf("clear schedules: %w", err)
		}
		c.Schedules, err = insertSchedules(ctx, tx, id, req.Schedules)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return c, nil
}

// Delete removes a class; its schedules cascade away at the store level.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClassNotFound
	}
	return nil
}

// CountBySport returns how many classes reference the given sport. The
// deletion guard for sports reads this before allowing a delete.
func (r *ClassRepository) CountBySport(ctx context.Context, sportID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM classes WHERE sport_id = $1`, sportID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count classes by sport: %w", err)
	}
	return n, nil
}

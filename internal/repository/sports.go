package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportscomplex/class-enrollment/internal/model"
)

// SportRepository handles persistence for sports.
type SportRepository struct {
	db *pgxpool.Pool
}

// NewSportRepository constructs a SportRepository.
func NewSportRepository(db *pgxpool.Pool) *SportRepository {
	return &SportRepository{db: db}
}

// NameTypeExists reports whether a live sport with the given name and type
// exists, ignoring excludeID when non-zero. The unique index on
// (name, type) backstops this check under concurrent writers.
func (r *SportRepository) NameTypeExists(ctx context.Context, name, sportType string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM sports WHERE name = $1 AND type = $2 AND id <> $3
		)`,
		name, sportType, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sport uniqueness: %w", err)
	}
	return exists, nil
}

// Create inserts a new sport.
func (r *SportRepository) Create(ctx context.Context, req model.CreateSportRequest) (*model.Sport, error) {
	s := &model.Sport{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO sports (name, type, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Type, s.Description,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if terr := translatePgError(err); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("insert sport: %w", err)
	}
	return s, nil
}

// GetByID returns a single sport or ErrSportNotFound.
func (r *SportRepository) GetByID(ctx context.Context, id int64) (*model.Sport, error) {
	var s model.Sport
	err := r.db.QueryRow(ctx,
		`SELECT id, name, type, description, created_at, updated_at
		 FROM sports WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.Type, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("get sport: %w", err)
	}
	return &s, nil
}

// List returns all sports ordered by creation time.
func (r *SportRepository) List(ctx context.Context) ([]model.Sport, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, type, description, created_at, updated_at
		 FROM sports
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	defer rows.Close()

	var sports []model.Sport
	for rows.Next() {
		var s model.Sport
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sport: %w", err)
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}

// Update rewrites a sport's fields.
func (r *SportRepository) Update(ctx context.Context, id int64, req model.CreateSportRequest) (*model.Sport, error) {
	s := &model.Sport{
		ID:          id,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	}
	err := r.db.QueryRow(ctx,
		`UPDATE sports
		 SET name = $2, type = $3, description = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		id, s.Name, s.Type, s.Description,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		if terr := translatePgError(err); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("update sport: %w", err)
	}
	return s, nil
}

// Delete removes a sport. The restrictive foreign key from classes
// backstops the service-level deletion guard.
func (r *SportRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sports WHERE id = $1`, id)
	if err != nil {
		if terr := translatePgError(err); terr != err {
			return terr
		}
		return fmt.Errorf("delete sport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSportNotFound
	}
	return nil
}

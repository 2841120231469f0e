package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
)

// SportService orchestrates sport CRUD with uniqueness and deletion rules.
type SportService struct {
	sports  SportStore
	classes ClassStore
}

// NewSportService constructs a SportService.
func NewSportService(sports SportStore, classes ClassStore) *SportService {
	return &SportService{sports: sports, classes: classes}
}

func normalizeSport(req *model.CreateSportRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.TrimSpace(req.Type)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return fmt.Errorf("sport name is required")
	}
	if req.Type == "" {
		return fmt.Errorf("sport type is required")
	}
	return nil
}

// Create validates the request, pre-checks (name, type) uniqueness, and
// inserts the sport. The unique index is the backstop for races past the
// pre-check.
func (s *SportService) Create(ctx context.Context, req model.CreateSportRequest) (*model.Sport, error) {
	if err := normalizeSport(&req); err != nil {
		return nil, err
	}
	taken, err := s.sports.NameTypeExists(ctx, req.Name, req.Type, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrDuplicateSport
	}
	return s.sports.Create(ctx, req)
}

// Get returns a single sport.
func (s *SportService) Get(ctx context.Context, id int64) (*model.Sport, error) {
	return s.sports.GetByID(ctx, id)
}

// List returns all sports.
func (s *SportService) List(ctx context.Context) ([]model.Sport, error) {
	return s.sports.List(ctx)
}

// Update rewrites a sport, re-checking uniqueness against every sport
// but the one being updated.
func (s *SportService) Update(ctx context.Context, id int64, req model.CreateSportRequest) (*model.Sport, error) {
	if err := normalizeSport(&req); err != nil {
		return nil, err
	}
	if _, err := s.sports.GetByID(ctx, id); err != nil {
		return nil, err
	}
	taken, err := s.sports.NameTypeExists(ctx, req.Name, req.Type, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrDuplicateSport
	}
	return s.sports.Update(ctx, id, req)
}

// Delete removes a sport. It is vetoed while any class references the
// sport; the admin must delete those classes first.
func (s *SportService) Delete(ctx context.Context, id int64) error {
	if _, err := s.sports.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.classes.CountBySport(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return repository.ErrSportHasClasses
	}
	return s.sports.Delete(ctx, id)
}

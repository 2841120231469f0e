package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
)

const (
	maxCapacity = 100

	defaultTake = 30
	maxTake     = 100
)

// ClassService orchestrates class CRUD, schedule slots, and the
// enrollment lifecycle. Register and Unregister are the only paths that
// create and destroy applications.
type ClassService struct {
	classes      ClassStore
	sports       SportStore
	schedules    ScheduleStore
	applications ApplicationStore
}

// NewClassService constructs a ClassService with its dependencies.
func NewClassService(classes ClassStore, sports SportStore, schedules ScheduleStore, applications ApplicationStore) *ClassService {
	return &ClassService{
		classes:      classes,
		sports:       sports,
		schedules:    schedules,
		applications: applications,
	}
}

func validateClass(req *model.CreateClassRequest) error {
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return fmt.Errorf("class description is required")
	}
	if req.Duration <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes")
	}
	if req.Capacity < 1 || req.Capacity > maxCapacity {
		return fmt.Errorf("capacity must be between 1 and %d", maxCapacity)
	}
	if req.SportID <= 0 {
		return fmt.Errorf("sport_id is required")
	}
	seen := make(map[model.ScheduleSlot]struct{}, len(req.Schedules))
	for i := range req.Schedules {
		if err := validateSlot(&req.Schedules[i]); err != nil {
			return err
		}
		if _, dup := seen[req.Schedules[i]]; dup {
			return repository.ErrDuplicateSchedule
		}
		seen[req.Schedules[i]] = struct{}{}
	}
	return nil
}

func validateSlot(slot *model.ScheduleSlot) error {
	slot.Date = strings.TrimSpace(slot.Date)
	slot.StartTime = strings.TrimSpace(slot.StartTime)
	slot.EndTime = strings.TrimSpace(slot.EndTime)
	if _, err := time.Parse("2006-01-02", slot.Date); err != nil {
		return fmt.Errorf("schedule date must be YYYY-MM-DD")
	}
	if slot.StartTime == "" || slot.EndTime == "" {
		return fmt.Errorf("schedule start and end times are required")
	}
	return nil
}

// Create validates the request, resolves the owning sport, and inserts
// the class with any initial schedule slots.
func (s *ClassService) Create(ctx context.Context, req model.CreateClassRequest) (*model.Class, error) {
	if err := validateClass(&req); err != nil {
		return nil, err
	}
	if _, err := s.sports.GetByID(ctx, req.SportID); err != nil {
		return nil, err
	}
	return s.classes.Create(ctx, req)
}

// Get returns a class with live occupancy and schedules.
func (s *ClassService) Get(ctx context.Context, id int64) (*model.Class, error) {
	return s.classes.GetByID(ctx, id)
}

// List returns classes filtered by sport names with pagination.
func (s *ClassService) List(ctx context.Context, sportNames []string, take, skip int) (*model.ClassList, error) {
	if take <= 0 {
		take = defaultTake
	}
	if take > maxTake {
		take = maxTake
	}
	if skip < 0 {
		skip = 0
	}
	return s.classes.List(ctx, sportNames, take, skip)
}

// Update rewrites a class. Lowering capacity below current occupancy is
// deliberately permitted; existing enrollments are never reconciled.
func (s *ClassService) Update(ctx context.Context, id int64, req model.CreateClassRequest) (*model.Class, error) {
	if err := validateClass(&req); err != nil {
		return nil, err
	}
	cls, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SportID != cls.SportID {
		if _, err := s.sports.GetByID(ctx, req.SportID); err != nil {
			return nil, err
		}
	}
	return s.classes.Update(ctx, id, req)
}

// Delete removes a class. It is vetoed while live applications exist:
// seat accounting must be cleared explicitly, never silently discarded.
// Schedules are not blocking; they cascade with the class.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if _, err := s.classes.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.applications.CountByClass(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return repository.ErrClassHasApplications
	}
	return s.classes.Delete(ctx, id)
}

// Register enrolls a user into a class. The store-level allocator
// serialises concurrent attempts on the same class, so at most capacity
// live applications ever exist; any failure leaves state unchanged.
func (s *ClassService) Register(ctx context.Context, classID, userID int64) (*model.Application, error) {
	return s.applications.Enroll(ctx, classID, userID)
}

// Unregister removes a user's live application for a class. Calling it
// again for the same pair yields ErrApplicationNotFound.
func (s *ClassService) Unregister(ctx context.Context, classID, userID int64) error {
	return s.applications.Unenroll(ctx, classID, userID)
}

// Registrations returns all live applications for a class.
func (s *ClassService) Registrations(ctx context.Context, classID int64) ([]model.Application, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.applications.ListByClass(ctx, classID)
}

// CreateSchedule adds a single slot to a class. The exact
// (date, start, end, class) tuple must be unique; changing any one field
// makes it a distinct slot.
func (s *ClassService) CreateSchedule(ctx context.Context, classID int64, slot model.ScheduleSlot) (*model.Schedule, error) {
	if err := validateSlot(&slot); err != nil {
		return nil, err
	}
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	exists, err := s.schedules.SlotExists(ctx, slot, classID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateSchedule
	}
	return s.schedules.Create(ctx, slot, classID)
}

// DeleteSchedule removes a single slot.
func (s *ClassService) DeleteSchedule(ctx context.Context, id int64) error {
	return s.schedules.Delete(ctx, id)
}

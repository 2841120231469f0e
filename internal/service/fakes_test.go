package service

import (
	"context"
	"sync"
	"time"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
)

// fakeStore is an in-memory implementation of every store interface. Its
// Enroll mirrors the real allocator: the whole admit sequence runs under
// one lock, so concurrent callers are serialised exactly as the row lock
// serialises them against Postgres.
type fakeStore struct {
	mu        sync.Mutex
	sports    map[int64]*model.Sport
	classes   map[int64]*model.Class
	schedules map[int64]*model.Schedule
	users     map[int64]*model.User
	apps      map[int64]*model.Application
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sports:    make(map[int64]*model.Sport),
		classes:   make(map[int64]*model.Class),
		schedules: make(map[int64]*model.Schedule),
		users:     make(map[int64]*model.User),
		apps:      make(map[int64]*model.Application),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// ── SportStore ───────────────────────────────────────────────────────────

func (f *fakeStore) NameTypeExists(_ context.Context, name, sportType string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sports {
		if s.Name == name && s.Type == sportType && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(_ context.Context, req model.CreateSportRequest) (*model.Sport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &model.Sport{
		ID:          f.id(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.sports[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*model.Sport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sports[id]
	if !ok {
		return nil, repository.ErrSportNotFound
	}
	return s, nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Sport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Sport
	for _, s := range f.sports {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, req model.CreateSportRequest) (*model.Sport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sports[id]
	if !ok {
		return nil, repository.ErrSportNotFound
	}
	s.Name, s.Type, s.Description = req.Name, req.Type, req.Description
	s.UpdatedAt = time.Now()
	return s, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sports[id]; !ok {
		return repository.ErrSportNotFound
	}
	delete(f.sports, id)
	return nil
}

// sportStore/classStore wrappers disambiguate the overlapping method
// names between the store interfaces.
type sportStore struct{ *fakeStore }
type classStore struct{ *fakeStore }
type scheduleStore struct{ *fakeStore }
type userStore struct{ *fakeStore }
type applicationStore struct{ *fakeStore }

// ── ClassStore ───────────────────────────────────────────────────────────

func (f classStore) Create(_ context.Context, req model.CreateClassRequest) (*model.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &model.Class{
		ID:          f.id(),
		Description: req.Description,
		Duration:    req.Duration,
		Capacity:    req.Capacity,
		SportID:     req.SportID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.classes[c.ID] = c
	for _, slot := range req.Schedules {
		s := &model.Schedule{
			ID:        f.id(),
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			ClassID:   c.ID,
		}
		f.schedules[s.ID] = s
		c.Schedules = append(c.Schedules, *s)
	}
	return c, nil
}

func (f classStore) GetByID(_ context.Context, id int64) (*model.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[id]
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	out := *c
	out.Occupancy = f.occupancyLocked(id)
	return &out, nil
}

func (f *fakeStore) occupancyLocked(classID int64) int {
	n := 0
	for _, a := range f.apps {
		if a.ClassID == classID {
			n++
		}
	}
	return n
}

func (f classStore) List(_ context.Context, sportNames []string, take, skip int) (*model.ClassList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := &model.ClassList{Data: []model.Class{}}
	for _, c := range f.classes {
		if len(sportNames) > 0 {
			sport, ok := f.sports[c.SportID]
			if !ok {
				continue
			}
			match := false
			for _, name := range sportNames {
				if sport.Name == name {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out := *c
		out.Occupancy = f.occupancyLocked(c.ID)
		list.Data = append(list.Data, out)
	}
	list.Total = len(list.Data)
	if skip > len(list.Data) {
		skip = len(list.Data)
	}
	list.Data = list.Data[skip:]
	if take < len(list.Data) {
		list.Data = list.Data[:take]
	}
	return list, nil
}

func (f classStore) Update(_ context.Context, id int64, req model.CreateClassRequest) (*model.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[id]
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	c.Description, c.Duration, c.Capacity, c.SportID = req.Description, req.Duration, req.Capacity, req.SportID
	c.UpdatedAt = time.Now()
	if len(req.Schedules) > 0 {
		for sid, s := range f.schedules {
			if s.ClassID == id {
				delete(f.schedules, sid)
			}
		}
		c.Schedules = nil
		for _, slot := range req.Schedules {
			s := &model.Schedule{
				ID:        f.id(),
				Date:      slot.Date,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				ClassID:   id,
			}
			f.schedules[s.ID] = s
			c.Schedules = append(c.Schedules, *s)
		}
	}
	return c, nil
}

func (f classStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.classes[id]; !ok {
		return repository.ErrClassNotFound
	}
	delete(f.classes, id)
	// Schedules and applications cascade with the class.
	for sid, s := range f.schedules {
		if s.ClassID == id {
			delete(f.schedules, sid)
		}
	}
	for aid, a := range f.apps {
		if a.ClassID == id {
			delete(f.apps, aid)
		}
	}
	return nil
}

func (f classStore) CountBySport(_ context.Context, sportID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.classes {
		if c.SportID == sportID {
			n++
		}
	}
	return n, nil
}

// ── ScheduleStore ────────────────────────────────────────────────────────

func (f scheduleStore) SlotExists(_ context.Context, slot model.ScheduleSlot, classID, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ClassID == classID && s.Date == slot.Date &&
			s.StartTime == slot.StartTime && s.EndTime == slot.EndTime &&
			s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f scheduleStore) Create(_ context.Context, slot model.ScheduleSlot, classID int64) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &model.Schedule{
		ID:        f.id(),
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		ClassID:   classID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.schedules[s.ID] = s
	return s, nil
}

func (f scheduleStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schedules[id]; !ok {
		return repository.ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

// ── UserStore ────────────────────────────────────────────────────────────

func (f userStore) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.users {
		if other.Email == u.Email {
			return nil, repository.ErrEmailTaken
		}
	}
	u.ID = f.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f userStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f userStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f userStore) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f userStore) Update(_ context.Context, u *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f userStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	// Applications held by the user cascade away.
	for aid, a := range f.apps {
		if a.UserID == id {
			delete(f.apps, aid)
		}
	}
	return nil
}

// ── ApplicationStore ─────────────────────────────────────────────────────

func (f applicationStore) Enroll(_ context.Context, classID, userID int64) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[classID]
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	if _, ok := f.users[userID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	for _, a := range f.apps {
		if a.ClassID == classID && a.UserID == userID {
			return nil, repository.ErrAlreadyEnrolled
		}
	}
	if f.occupancyLocked(classID) >= c.Capacity {
		return nil, repository.ErrClassFull
	}
	app := &model.Application{
		ID:        f.id(),
		UserID:    userID,
		ClassID:   classID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.apps[app.ID] = app
	return app, nil
}

func (f applicationStore) Unenroll(_ context.Context, classID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for aid, a := range f.apps {
		if a.ClassID == classID && a.UserID == userID {
			delete(f.apps, aid)
			return nil
		}
	}
	return repository.ErrApplicationNotFound
}

func (f applicationStore) ListByClass(_ context.Context, classID int64) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Application
	for _, a := range f.apps {
		if a.ClassID == classID {
			app := *a
			if u, ok := f.users[a.UserID]; ok {
				app.User = u
			}
			out = append(out, app)
		}
	}
	return out, nil
}

func (f applicationStore) CountByClass(_ context.Context, classID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.occupancyLocked(classID), nil
}

// newTestServices wires every service over one shared fake store.
func newTestServices() (*fakeStore, *SportService, *ClassService, *UserService, *AuthService) {
	f := newFakeStore()
	sports := sportStore{f}
	classes := classStore{f}
	schedules := scheduleStore{f}
	users := userStore{f}
	apps := applicationStore{f}

	userSvc := NewUserService(users, 4) // min bcrypt cost keeps tests fast
	authSvc := NewAuthService(users, userSvc, "test-secret", time.Hour)
	sportSvc := NewSportService(sports, classes)
	classSvc := NewClassService(classes, sports, schedules, apps)
	return f, sportSvc, classSvc, userSvc, authSvc
}

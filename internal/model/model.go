// Package model defines the core domain types for the class enrollment system.
package model

import "time"

// Role controls which operations a user may perform.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Sport is a category that classes are organized under.
type Sport struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Class is a capacity-limited scheduled activity belonging to a sport.
type Class struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Capacity    int        `json:"capacity"`
	SportID     int64      `json:"sport_id"`
	Occupancy   int        `json:"occupancy"`
	Schedules   []Schedule `json:"schedules,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Remaining returns the number of available seats.
func (c *Class) Remaining() int {
	return c.Capacity - c.Occupancy
}

// IsFull returns true when no seats remain.
func (c *Class) IsFull() bool {
	return c.Occupancy >= c.Capacity
}

// Schedule is a single time slot of a class. The (date, start, end, class)
// tuple is unique among live schedules.
type Schedule struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	ClassID   int64     `json:"class_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is an account that can enroll in classes.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application is a user's live enrollment in a class. It is created only
// through register and destroyed only through unregister or a cascade from
// a deleted parent; it is never edited in place.
type Application struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ClassID   int64     `json:"class_id"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSportRequest is the payload for creating or updating a sport.
type CreateSportRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ScheduleSlot is one time slot in a class create/update payload.
type ScheduleSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateClassRequest is the payload for creating or updating a class.
// Schedules, when present on update, replace the class's existing slots.
type CreateClassRequest struct {
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	Capacity    int            `json:"capacity"`
	SportID     int64          `json:"sport_id"`
	Schedules   []ScheduleSlot `json:"schedules,omitempty"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// UpdateUserRequest is the payload for editing a user account. Empty
// fields are left unchanged.
type UpdateUserRequest struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Role    Role   `json:"role,omitempty"`
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries a signed token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ClassList is a paginated listing of classes.
type ClassList struct {
	Data  []Class `json:"data"`
	Total int     `json:"total"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

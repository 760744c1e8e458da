package service

import (
	"fmt"
	"time"
)

// User represents an authenticated dashboard user. The JSON form doubles as
// the persisted user file format.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Valid reports whether the user is a usable session identity.
// Partial records (missing id, name, or email) are treated as no user.
func (u User) Valid() bool {
	return u.ID != "" && u.Name != "" && u.Email != ""
}

// Status is the workflow state of a ticket.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusBlocked    Status = "Blocked"
)

// Statuses lists all statuses in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}

// NormalizeStatus maps a wire string onto one of the four statuses.
// Unknown or empty values default to Pending.
func NormalizeStatus(s string) Status {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusBlocked:
		return Status(s)
	default:
		return StatusPending
	}
}

// DateLayout is the calendar-date form the server exchanges.
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. The empty string means unset.
type Date string

// ParseDate validates s as a YYYY-MM-DD date. An empty string is a valid
// unset date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date(s), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == "" }

// Time returns the date as a time.Time at midnight UTC.
// The zero time is returned for an unset date.
func (d Date) Time() time.Time {
	if d == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string { return string(d) }

// Ticket represents a single ticket (task).
// ID is empty for tickets that have not been created on the server yet.
type Ticket struct {
	ID          string
	Name        string
	Description string
	Status      Status
	Priority    string
	DueDate     Date
	CreatedAt   time.Time
	AuthorID    string
}

// Credentials is a login request.
type Credentials struct {
	Email    string
	Password string
}

// Registration is an account-creation request.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// RegisterResult is the structured outcome of a registration attempt.
// FieldErrors carries per-field validation messages from the server so a
// form can annotate individual inputs.
type RegisterResult struct {
	OK          bool
	Message     string
	FieldErrors map[string]string
}

// Profile is a profile-update request. Password is optional; an empty
// password leaves the current one unchanged.
type Profile struct {
	Name     string
	Password string
}

package domain

import (
	"errors"
	"time"
)

// TimesheetStatus represents the review state of a timesheet entry.
type TimesheetStatus string

const (
	StatusPending  TimesheetStatus = "pending"
	StatusApproved TimesheetStatus = "approved"
	StatusRejected TimesheetStatus = "rejected"
)

var ErrTimesheetNotFound = errors.New("timesheet not found")
var ErrInvalidStatus = errors.New("invalid timesheet status")
var ErrForbidden = errors.New("access forbidden")

// ParseStatus validates a raw status value against the closed enum.
// Anything outside {pending, approved, rejected} is rejected; the store
// never sees a free-form status string.
func ParseStatus(raw string) (TimesheetStatus, error) {
	switch s := TimesheetStatus(raw); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Owner is the name/email pair joined into admin list views.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Timesheet is one logged day of work. UserID is fixed at creation and
// only admins may move Status off pending.
type Timesheet struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        time.Time       `json:"date"`
	TaskName    string          `json:"task_name"`
	Hours       float64         `json:"hours"`
	Description string          `json:"description,omitempty"`
	Status      TimesheetStatus `json:"status"`
	Owner       *Owner          `json:"user,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

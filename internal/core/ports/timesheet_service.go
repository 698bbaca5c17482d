package ports

import (
	"context"
	"time"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

// CreateTimesheetInput carries the data for logging one day of work.
// The owner is always the authenticated caller; any status supplied by the
// client is ignored and the entry starts out pending.
type CreateTimesheetInput struct {
	Identity    domain.Identity
	Date        time.Time
	TaskName    string
	Hours       float64
	Description string
}

// SetStatusInput carries an admin's approve/reject decision.
type SetStatusInput struct {
	Identity    domain.Identity
	TimesheetID string
	Status      string
}

// TimesheetService defines the timesheet use cases.
type TimesheetService interface {
	Create(ctx context.Context, input CreateTimesheetInput) (*domain.Timesheet, error)
	// List returns the caller's own entries, or every entry (with owner
	// name/email joined) when the caller is an admin.
	List(ctx context.Context, id domain.Identity) ([]*domain.Timesheet, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*domain.Timesheet, error)
}

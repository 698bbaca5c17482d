package ports

import (
	"context"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

// TimesheetRepository defines persistence operations for timesheet entries.
type TimesheetRepository interface {
	Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	FindByID(ctx context.Context, id string) (*domain.Timesheet, error)
	// ListByUser returns the entries owned by a single user.
	ListByUser(ctx context.Context, userID string) ([]*domain.Timesheet, error)
	// ListAll returns every entry with the owner's name and email joined in.
	ListAll(ctx context.Context) ([]*domain.Timesheet, error)
	// UpdateStatus overwrites the status of one entry and returns the
	// updated record. Single-document write; concurrent updates are
	// last-write-wins.
	UpdateStatus(ctx context.Context, id string, status domain.TimesheetStatus) (*domain.Timesheet, error)
}

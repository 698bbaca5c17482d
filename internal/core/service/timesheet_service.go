package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/timetrack/timesheet-system/internal/core/domain"
	"github.com/timetrack/timesheet-system/internal/core/ports"
)

// TimesheetService implements the timesheet use cases: logging entries,
// listing them per role, and the admin approve/reject decision.
type TimesheetService struct {
	repo   ports.TimesheetRepository
	logger zerolog.Logger
}

func NewTimesheetService(repo ports.TimesheetRepository, logger zerolog.Logger) *TimesheetService {
	return &TimesheetService{repo: repo, logger: logger}
}

// Create persists a new entry owned by the caller. The status is always
// pending here, whatever the client sent.
func (s *TimesheetService) Create(ctx context.Context, input ports.CreateTimesheetInput) (*domain.Timesheet, error) {
	now := time.Now().UTC()
	ts := &domain.Timesheet{
		UserID:      input.Identity.UserID,
		Date:        input.Date,
		TaskName:    input.TaskName,
		Hours:       input.Hours,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, ts)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.Identity.UserID).Msg("failed to create timesheet")
		return nil, err
	}

	s.logger.Info().Str("timesheet_id", created.ID).Str("user_id", created.UserID).Msg("timesheet created")
	return created, nil
}

// List returns the caller's own entries; admins get everyone's, each
// annotated with the owner's name and email.
func (s *TimesheetService) List(ctx context.Context, id domain.Identity) ([]*domain.Timesheet, error) {
	if domain.CanReadAllTimesheets(id) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, id.UserID)
}

// SetStatus applies an admin decision to one entry. Non-admins are
// refused, and the new status must be a member of the closed enum.
func (s *TimesheetService) SetStatus(ctx context.Context, input ports.SetStatusInput) (*domain.Timesheet, error) {
	if !domain.CanSetTimesheetStatus(input.Identity) {
		return nil, domain.ErrForbidden
	}

	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, input.TimesheetID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("timesheet_id", updated.ID).
		Str("status", string(status)).
		Str("decided_by", input.Identity.UserID).
		Msg("timesheet status updated")
	return updated, nil
}

package ports

import (
	"context"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

// UpdateUserInput is the raw patch a caller submits for a user record.
// Pointer fields distinguish "absent" from "set to empty".
type UpdateUserInput struct {
	Identity     domain.Identity
	TargetUserID string
	Name         *string
	Email        *string
	Password     *string
	Role         *string
}

// UserService defines account management use cases.
type UserService interface {
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id domain.Identity, targetUserID string) error
	ListAll(ctx context.Context, id domain.Identity) ([]*domain.User, error)
}

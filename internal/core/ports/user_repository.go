package ports

import (
	"context"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

// UserUpdate is the projection of fields allowed to change on a user
// record. Nil means "leave untouched". The service layer is responsible
// for never populating Role on behalf of a non-admin caller.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// Empty reports whether the update would touch no fields.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil && u.Role == nil
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every user record.
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies the non-nil fields of upd and returns the updated record.
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
// Role is optional; empty means employee.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

package handler

import "github.com/timetrack/timesheet-system/internal/core/domain"

// errorResponse mirrors the envelope rendered by the central error
// handler; declared here so the swagger annotations can reference it.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=employee admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// loginResponse flattens the profile next to the token, matching what the
// dashboard client stores as its session.
type loginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

package handler

// updateUserRequest is a partial patch: absent fields stay untouched.
// A role sent by a non-admin is silently discarded by the service.
type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=employee admin"`
}

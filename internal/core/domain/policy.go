package domain

// Identity is the (user id, role) pair recovered from a verified bearer
// token. It is attached to the request context by the auth middleware and
// consumed by the policy functions below.
type Identity struct {
	UserID string
	Role   string
}

// CanReadAllTimesheets: only admins see every owner's entries.
func CanReadAllTimesheets(id Identity) bool {
	return id.Role == RoleAdmin
}

// CanSetTimesheetStatus: approving or rejecting an entry is admin-only;
// owners cannot self-approve.
func CanSetTimesheetStatus(id Identity) bool {
	return id.Role == RoleAdmin
}

// CanModifyUser: a user may edit or delete their own account, admins may
// touch anyone's.
func CanModifyUser(id Identity, targetUserID string) bool {
	return id.UserID == targetUserID || id.Role == RoleAdmin
}

// CanListAllUsers: the user directory is admin-only.
func CanListAllUsers(id Identity) bool {
	return id.Role == RoleAdmin
}

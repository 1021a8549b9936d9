package domain

import "time"

// Role is the closed set of admin roles. Each role maps to exactly one
// dashboard and one canonical permission set.
type Role string

const (
	RoleAccountManager  Role = "account-manager"
	RoleCustomerService Role = "customer-service"
	RoleExecutive       Role = "executive"
)

// rolePermissions is the single source of truth for role → permission sets.
// Permission slices returned to callers are always fresh copies.
var rolePermissions = map[Role][]string{
	RoleAccountManager:  {"manage-accounts", "view-analytics", "manage-registrations"},
	RoleCustomerService: {"support-users", "handle-complaints", "view-tickets"},
	RoleExecutive:       {"full-access", "manage-admins", "view-reports", "manage-fees"},
}

// ValidRole reports whether r belongs to the closed role enum.
func ValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}

// PermissionsOf returns the canonical permission set for a role, or nil for a
// role outside the enum. Permissions are derived here at read time and never
// edited independently of the role.
func PermissionsOf(r Role) []string {
	perms, ok := rolePermissions[r]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// Roles returns every role in the closed enum.
func Roles() []Role {
	return []Role{RoleAccountManager, RoleCustomerService, RoleExecutive}
}

// User is a member principal.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Verified     bool      `json:"verified"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Admin is a role-scoped staff principal. Permissions always equal
// PermissionsOf(Role); the stored copy exists for external readers only.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Permissions  []string  `json:"permissions"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the result of a successful session validation: exactly one of
// User or Admin is set, matching the session's kind.
type Principal struct {
	Kind  Kind   `json:"kind"`
	User  *User  `json:"user,omitempty"`
	Admin *Admin `json:"admin,omitempty"`
}

// ID returns the id of whichever principal record is present.
func (p *Principal) ID() string {
	switch {
	case p.User != nil:
		return p.User.ID
	case p.Admin != nil:
		return p.Admin.ID
	}
	return ""
}

// Authorize decides whether an admin may access a route requiring the given
// role. Exact string equality, no hierarchy; an unknown role is always denied.
func Authorize(admin *Admin, required Role) bool {
	if admin == nil || !ValidRole(required) || !ValidRole(admin.Role) {
		return false
	}
	return admin.Role == required
}

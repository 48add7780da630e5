// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including bulk destructive operations
	RoleAdmin UserRole = "admin"

	// Can add books, correct rating tallies, and remove single entries
	RoleLibrarian UserRole = "librarian"

	// Default role for standard registered users, read-only catalog access
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleLibrarian:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomebase/tomebase/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_is_librarian", sec.RoleAdmin, sec.RoleLibrarian, true},
		{"admin_is_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"librarian_is_not_admin", sec.RoleLibrarian, sec.RoleAdmin, false},
		{"librarian_is_member", sec.RoleLibrarian, sec.RoleMember, true},
		{"member_is_not_librarian", sec.RoleMember, sec.RoleLibrarian, false},
		{"unknown_role_below_member", sec.UserRole("ghost"), sec.RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

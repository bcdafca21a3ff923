package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in    string
		want  Role
		known bool
	}{
		{"Applicant", RoleApplicant, true},
		{"HRMgr", RoleHRMgr, true},
		{"Employee", RoleEmployee, true},
		{"hrmgr", RoleUnknown, false},
		{"admin", RoleUnknown, false},
		{"", RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestRoleSet(t *testing.T) {
	s := NewRoleSet(RoleApplicant, RoleHRMgr)

	assert.True(t, s.Has(RoleApplicant))
	assert.True(t, s.Has(RoleHRMgr))
	assert.False(t, s.Has(RoleEmployee))
	assert.False(t, s.Has(RoleUnknown))
	assert.Equal(t, []Role{RoleApplicant, RoleHRMgr}, s.Slice())
}

func TestUserHasRole(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.HasRole(RoleHRMgr))

	u := &User{Role: RoleHRMgr}
	assert.True(t, u.HasRole(RoleHRMgr))
	assert.False(t, u.HasRole(RoleApplicant))

	odd := &User{Role: Role("admin")}
	assert.False(t, odd.HasRole(Role("admin")))
}

func TestUserClone(t *testing.T) {
	u := &User{ID: "u-1", Role: RoleEmployee}
	c := u.Clone()
	c.Role = RoleHRMgr

	assert.Equal(t, RoleEmployee, u.Role)
	assert.Nil(t, (*User)(nil).Clone())
}

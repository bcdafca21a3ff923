package auth

// Role is the categorical attribute of a user that restricts which views are reachable.
// The set is closed: anything the identity backend sends outside of it parses to RoleUnknown.
type Role string

const (
	RoleApplicant Role = "Applicant"
	RoleHRMgr     Role = "HRMgr"
	RoleEmployee  Role = "Employee"

	RoleUnknown Role = ""
)

// Roles returns every known role in a stable order.
func Roles() []Role {
	return []Role{RoleApplicant, RoleHRMgr, RoleEmployee}
}

// ParseRole maps a raw role string onto the closed enumeration.
// Matching is exact; the identity backend emits these literals verbatim.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleApplicant, RoleHRMgr, RoleEmployee:
		return Role(s), true
	}
	return RoleUnknown, false
}

// Known reports whether r is part of the enumeration.
func (r Role) Known() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}

// RoleSet is an unordered set of roles, used for allowedRoles route metadata.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports membership. Unknown roles are never members.
func (s RoleSet) Has(r Role) bool {
	if !r.Known() {
		return false
	}
	_, ok := s[r]
	return ok
}

// Slice returns the members in enumeration order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range Roles() {
		if _, ok := s[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

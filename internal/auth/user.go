package auth

// User is the session record of an authenticated user.
// Only Role is consulted by navigation; the rest is carried for views.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty" validate:"max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Role  Role   `json:"role" validate:"required,oneof=Applicant HRMgr Employee"`
}

// Clone returns a copy so callers cannot mutate a stored record in place.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// HasRole reports whether the user holds exactly the given known role.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role.Known() && u.Role == r
}

package models

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleRoot       Role = "root"
)

// Level places roles on a single ordered scale. Unknown roles rank below user.
func (r Role) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	case RoleRoot:
		return 4
	default:
		return 0
	}
}

func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

// IsAdmin reports whether the role may manage bookings and rules for any
// organization.
func (r Role) IsAdmin() bool {
	return r.AtLeast(RoleAdmin)
}

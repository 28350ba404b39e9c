package domain

// Role is the application role bound to a user. The set is closed: every
// authorization decision is a total function over these four values.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleMember     Role = "member"
	RoleClient     Role = "client"
	RoleOutsourced Role = "outsourced"
)

// DefaultRole is assumed when a user has no row in user_roles.
const DefaultRole = RoleMember

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleClient, RoleOutsourced:
		return true
	}
	return false
}

// ParseRole converts a stored string to a Role, falling back to DefaultRole
// for unknown values so a corrupt row never grants elevated access.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return DefaultRole
	}
	return r
}

package common

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the two roles the access gate knows.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

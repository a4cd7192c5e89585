package domain

// Role is the authorization role carried by a principal. The backend never
// manages credentials itself; the identity provider hands us {id, role} and
// everything downstream keys off the role.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleInvestigator Role = "Investigator"
	RoleLabStaff     Role = "Lab Staff"

	// RolePublic is the synthetic role for unauthenticated callers. It is
	// never stored on a person record.
	RolePublic Role = "Public"
)

// Known reports whether r is one of the roles a person record may carry.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleInvestigator, RoleLabStaff:
		return true
	}
	return false
}

package domain

// Role is the closed set of portal roles. The string value is the tag
// stored on user profiles and is matched case-sensitively.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDoctor       Role = "Doctor"
	RoleNurse        Role = "Nurse"
	RoleReceptionist Role = "Receptionist"
	RoleCashier      Role = "Cashier"
	RolePatient      Role = "Patient"
)

// roles lists every role in display order.
var roles = []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RoleCashier, RolePatient}

var dashboardPaths = map[Role]string{
	RoleAdmin:        "/admin/dashboard",
	RoleDoctor:       "/doctor/dashboard",
	RoleNurse:        "/nurse/dashboard",
	RoleReceptionist: "/receptionist/dashboard",
	RoleCashier:      "/cashier/dashboard",
	RolePatient:      "/patient/dashboard",
}

// Roles returns a copy of all known roles.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// ParseRole converts a stored role tag into a Role. An empty or unknown tag
// yields ErrRoleUndefined.
func ParseRole(tag string) (Role, error) {
	r := Role(tag)
	if !r.Valid() {
		return "", ErrRoleUndefined
	}
	return r, nil
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := dashboardPaths[r]
	return ok
}

// DashboardPath returns the landing route for r.
func (r Role) DashboardPath() (string, bool) {
	p, ok := dashboardPaths[r]
	return p, ok
}

func (r Role) String() string { return string(r) }

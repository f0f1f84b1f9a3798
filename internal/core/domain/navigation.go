package domain

// NavItem is a single entry in a role's navigation menu.
type NavItem struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

var navigation = map[Role][]NavItem{
	RoleAdmin: {
		{Href: "/admin/dashboard", Label: "Dashboard"},
		{Href: "/admin/clinics", Label: "Clinics"},
		{Href: "/admin/users", Label: "Users"},
		{Href: "/admin/subscriptions", Label: "Subscriptions"},
		{Href: "/admin/settings", Label: "System Settings"},
	},
	RoleDoctor: {
		{Href: "/doctor/dashboard", Label: "Dashboard"},
		{Href: "/doctor/patients", Label: "Patient Records"},
		{Href: "/doctor/prescriptions", Label: "Prescriptions"},
		{Href: "/doctor/reports", Label: "Reports"},
	},
	RoleNurse: {
		{Href: "/nurse/dashboard", Label: "Dashboard"},
		{Href: "/nurse/patients", Label: "Patients"},
		{Href: "/nurse/labs", Label: "Lab Results"},
	},
	RoleReceptionist: {
		{Href: "/receptionist/dashboard", Label: "Dashboard"},
		{Href: "/receptionist/patients", Label: "Patient Registration"},
		{Href: "/receptionist/appointments", Label: "Appointments"},
	},
	RoleCashier: {
		{Href: "/cashier/dashboard", Label: "Dashboard"},
		{Href: "/cashier/invoices", Label: "Invoices"},
		{Href: "/cashier/payments", Label: "Payments"},
	},
	RolePatient: {
		{Href: "/patient/dashboard", Label: "Dashboard"},
		{Href: "/patient/appointments", Label: "My Appointments"},
		{Href: "/patient/records", Label: "My Records"},
		{Href: "/patient/settings", Label: "Profile Settings"},
	},
}

// Navigation returns the menu for r, or nil for an unknown role.
func Navigation(r Role) []NavItem {
	items := navigation[r]
	if items == nil {
		return nil
	}
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}

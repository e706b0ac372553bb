package domain

// Role identifies the kind of account behind a session.
type Role string

const (
	RolePharmacy Role = "pharmacy"
	RoleAdmin    Role = "admin"
)

// RedirectPath returns the screen a freshly resolved session routes to.
func (r Role) RedirectPath() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/pharmacy-dashboard"
}

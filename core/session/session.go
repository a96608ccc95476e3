package session

// Roles known to the hub. The backend is authoritative; these values travel
// back verbatim in the login response.
const (
	RoleAdmin      = "admin"
	RoleFieldAgent = "field-agent"
)

// Session holds the authentication token and role of the signed-in user.
// Both values live and die together: a session either carries both or
// neither.
type Session struct {
	Token string
	Role  string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == RoleAdmin
}

func (s Session) IsFieldAgent() bool {
	return s.Authenticated() && s.Role == RoleFieldAgent
}

// DashboardPath returns the landing page for the session's role.
func (s Session) DashboardPath() string {
	return DashboardPath(s.Role)
}

func DashboardPath(role string) string {
	if role == RoleAdmin {
		return "/dashboard/admin"
	}
	return "/dashboard/field-agent"
}

// Store persists a session across page loads. Implementations must treat
// token and role as a single unit: Save writes both, Clear removes both.
type Store interface {
	Get() (Session, bool)
	Save(s Session) error
	Clear()
}

package identity

// PrincipalKind describes how a caller authenticated with the API.
type PrincipalKind string

const (
	PrincipalNone       PrincipalKind = "none"
	PrincipalRegistered PrincipalKind = "registered"
	PrincipalGuest      PrincipalKind = "guest"
)

// Principal captures normalized caller identity independent of auth source.
// Exactly one kind applies per request; PrincipalNone means the caller
// presented no usable credentials.
type Principal struct {
	Kind      PrincipalKind
	Subject   string
	Email     string
	Name      string
	Anonymous bool
}

// IsAuthenticated reports whether the principal may access protected routes.
func (p Principal) IsAuthenticated() bool {
	return p.Kind == PrincipalRegistered || p.Kind == PrincipalGuest
}

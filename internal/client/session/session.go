package session

import "github.com/midpointplace/midpoint/internal/client/models"

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	AuthFailed
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthFailed:
		return "auth_failed"
	default:
		return "unknown"
	}
}

// Session is a point-in-time copy of the manager's state. User points at an
// immutable snapshot; it is replaced, never mutated.
type Session struct {
	State     State
	User      *models.User
	Token     string
	IsLoading bool
	LastError string
}

// IsAuthenticated holds iff both a user and a token are present.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

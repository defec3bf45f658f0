package gateway

import "errors"

// Access is the guard's verdict for a protected surface.
type Access int

const (
	// Unauthenticated means no usable session exists. The caller should
	// send the user to sign in.
	Unauthenticated Access = iota
	// Unauthorized means the session is valid but the account's role
	// does not grant dashboard access.
	Unauthorized
	// Authorized means the account may enter.
	Authorized
)

func (a Access) String() string {
	switch a {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unauthenticated"
	}
}

// Guard decides whether the locally stored session may open the admin
// dashboard. It resolves each question with a single server round trip.
type Guard struct {
	client *Client
}

func NewGuard(client *Client) *Guard {
	return &Guard{client: client}
}

// Check verifies the stored session against the server and returns the
// verdict. A stale or revoked token is cleared locally so the next
// check starts signed out. Transport failures are returned as errors
// rather than folded into a verdict: "cannot reach the server" is not
// the same as "not allowed in".
func (g *Guard) Check() (Access, error) {
	if g.client.sessions.Token() == "" {
		return Unauthenticated, nil
	}

	me, err := g.client.WhoAmI()
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 403) {
			_ = g.client.sessions.Clear()
			return Unauthenticated, nil
		}
		return Unauthenticated, err
	}

	if !me.AdminAccess {
		return Unauthorized, nil
	}
	return Authorized, nil
}

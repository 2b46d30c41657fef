// Package guard contains the pure admission decisions gating each kind's
// command tree on its session status. Guards for the two kinds are never
// composed: the clinic tree consults only the clinic session and the client
// tree only the client session.
package guard

import "github.com/ekodina/vetdesk/internal/client/session"

// Decision is the outcome of an admission check.
type Decision int

const (
	// Wait means the session is still initializing; render a neutral
	// placeholder and admit nothing.
	Wait Decision = iota

	// Redirect means the navigation is discarded and the user is sent to the
	// kind's login entry point. No "return to" deep link is preserved.
	Redirect

	// Admit means the requested subtree may render.
	Admit
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Admit:
		return "admit"
	default:
		return "unknown"
	}
}

// ForStatus maps a session status to an admission decision.
func ForStatus(s session.Status) Decision {
	switch s {
	case session.StatusAuthenticated:
		return Admit
	case session.StatusUnauthenticated:
		return Redirect
	default:
		return Wait
	}
}

package session

import (
	"errors"

	"github.com/ekodina/vetdesk/internal/client/api"
)

// AuthError is returned by Login when the backend rejects the credentials or
// cannot be reached. Message is user-presentable; the login form shows it
// inline.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// userMessage converts a transport error into text safe to show inline.
// Backend detail messages are passed through; everything else collapses into
// a generic wording, since transport internals mean nothing to the user.
func userMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return statusErr.Detail
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable, please try again"
	}
	return "login failed"
}

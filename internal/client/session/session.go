// Package session owns the authentication lifecycle of one user kind. The
// application runs two managers side by side — clinic staff and pet tutors —
// built from the same Manager type and parametrized only by storage key and
// endpoint set, so the two kinds cannot share state by construction.
package session

import (
	"context"

	"github.com/ekodina/vetdesk/internal/client/api"
	"github.com/ekodina/vetdesk/internal/client/models"
	"github.com/ekodina/vetdesk/internal/client/tokenstore"
)

// Status is the observable session state.
type Status int

const (
	// StatusInitializing is the boot window between reading the stored token
	// and the profile fetch settling. It is the only state in which a token
	// may be held without a principal.
	StatusInitializing Status = iota

	// StatusAuthenticated means token and principal are both present.
	StatusAuthenticated

	// StatusUnauthenticated means neither is present.
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Endpoints is the kind-specific slice of the backend surface a Manager
// drives. Each function receives the token explicitly; nothing here relies
// on a shared mutable credential.
type Endpoints struct {
	Login   func(ctx context.Context, identifier, secret string) (string, models.Principal, error)
	Profile func(ctx context.Context, token string) (models.Principal, error)
	Logout  func(ctx context.Context, token string) error
}

// Kind bundles everything that distinguishes the two session populations.
type Kind struct {
	Name       string
	StorageKey string
	Endpoints  Endpoints
}

// Clinic builds the clinic-staff kind over the given transport client.
func Clinic(c api.Client) Kind {
	return Kind{
		Name:       "clinic",
		StorageKey: tokenstore.KeyClinicToken,
		Endpoints: Endpoints{
			Login: func(ctx context.Context, identifier, secret string) (string, models.Principal, error) {
				token, profile, err := c.LoginClinic(ctx, identifier, secret)
				if err != nil {
					return "", nil, err
				}
				return token, profile, nil
			},
			Profile: func(ctx context.Context, token string) (models.Principal, error) {
				profile, err := c.ClinicProfile(ctx, token)
				if err != nil {
					return nil, err
				}
				return profile, nil
			},
			Logout: c.Logout,
		},
	}
}

// Client builds the pet-tutor kind over the given transport client.
func Client(c api.Client) Kind {
	return Kind{
		Name:       "client",
		StorageKey: tokenstore.KeyClientToken,
		Endpoints: Endpoints{
			Login: func(ctx context.Context, identifier, secret string) (string, models.Principal, error) {
				token, profile, err := c.LoginClient(ctx, identifier, secret)
				if err != nil {
					return "", nil, err
				}
				return token, profile, nil
			},
			Profile: func(ctx context.Context, token string) (models.Principal, error) {
				profile, err := c.ClientProfile(ctx, token)
				if err != nil {
					return nil, err
				}
				return profile, nil
			},
			Logout: c.Logout,
		},
	}
}

// Package api contains the REST transport client for the clinic-management
// backend. It owns request construction, bearer-credential attachment and the
// mapping of transport/HTTP failures onto the package's error taxonomy.
package api

import (
	"context"

	"github.com/ekodina/vetdesk/internal/client/models"
)

// ListFilter narrows list reads to one animal. The zero value means
// "unscoped": the request is issued without an animal filter and the backend
// returns records across the whole catalog.
type ListFilter struct {
	AnimalID int64
}

// Unscoped reports whether the filter selects the whole catalog.
func (f ListFilter) Unscoped() bool { return f.AnimalID == 0 }

// Client is the surface the session managers, the scoped-animal context and
// the shell pages talk to. Every call attaches its own bearer token; the
// implementation holds no mutable default credential, so interleaved calls
// from the two session kinds can never run under each other's token.
type Client interface {
	// LoginClinic authenticates clinic staff and returns the issued token
	// together with the staff profile from the same response.
	LoginClinic(ctx context.Context, identifier, secret string) (string, models.ClinicProfile, error)

	// LoginClient authenticates a pet tutor.
	LoginClient(ctx context.Context, identifier, secret string) (string, models.ClientProfile, error)

	// ClinicProfile fetches the clinic principal for the given token.
	ClinicProfile(ctx context.Context, token string) (models.ClinicProfile, error)

	// ClientProfile fetches the pet-tutor principal for the given token.
	ClientProfile(ctx context.Context, token string) (models.ClientProfile, error)

	// Logout notifies the backend that the token's session ended. Best effort:
	// callers are expected to proceed with local teardown on error.
	Logout(ctx context.Context, token string) error

	// Animals returns the clinic's full animal catalog, in backend order.
	Animals(ctx context.Context, token string) ([]models.Animal, error)

	// Appointments lists visits, narrowed by the filter.
	Appointments(ctx context.Context, token string, filter ListFilter) ([]models.Appointment, error)

	// DietLogs lists feeding-plan records, narrowed by the filter.
	DietLogs(ctx context.Context, token string, filter ListFilter) ([]models.DietLog, error)
}

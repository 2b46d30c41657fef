// Package tokenstore persists the bearer tokens of the two session kinds in
// the client's local sqlite database. Only the token strings are stored; the
// principal is always re-derived from a profile fetch on boot.
package tokenstore

import "context"

// Storage keys for the two session kinds. They are distinct constants, never
// derived from the kind name at runtime, so the kinds cannot collide.
const (
	KeyClinicToken = "clinic_access_token"
	KeyClientToken = "client_access_token"
)

// Repository is the durable key/value surface the session managers use.
// Get of an absent key returns ("", nil).
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error

	// Reset removes both kinds' tokens atomically.
	Reset(ctx context.Context) error
}

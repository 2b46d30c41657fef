// Package scope owns the "currently selected animal" state shared by every
// clinic page: the catalog of selectable animals and the single optional
// selection. Pages never read an ambient current selection; they ask for an
// explicit Filter value and pass it into their own query construction, so
// the scoping dependency stays visible in signatures.
package scope

import (
	"context"
	"errors"
	"sync"

	"github.com/ekodina/vetdesk/internal/client/api"
	"github.com/ekodina/vetdesk/internal/client/models"
	"github.com/ekodina/vetdesk/internal/client/session"
	"github.com/ekodina/vetdesk/internal/logging"
	"github.com/google/uuid"
)

var (
	// ErrNotAuthenticated is returned by Load when no clinic session is
	// active. The call is otherwise a no-op.
	ErrNotAuthenticated = errors.New("clinic session not authenticated")

	// ErrUnknownAnimal is returned by Select for an id outside the catalog.
	ErrUnknownAnimal = errors.New("animal not in catalog")
)

// AnimalContext is the single source of truth for the scoping key. It does
// no filtering itself; consumers thread Filter() into their queries.
type AnimalContext struct {
	client api.Client
	clinic *session.Manager
	log    logging.Logger

	mu       sync.Mutex
	catalog  []models.Animal
	selected *models.Animal
	epoch    uuid.UUID
}

// NewAnimalContext binds the context to the clinic session whose lifetime it
// follows. The shell wires Reset to the session's teardown transition.
func NewAnimalContext(client api.Client, clinic *session.Manager, log logging.Logger) *AnimalContext {
	return &AnimalContext{
		client: client,
		clinic: clinic,
		log:    log.With("component", "scope"),
		epoch:  uuid.New(),
	}
}

// Load replaces the catalog with the clinic's current animal list. It is
// idempotent: repeated calls against a stable backend produce the same
// catalog, never an accumulation. Calling it while the clinic session is not
// authenticated is a logged no-op returning ErrNotAuthenticated. A fetch
// failure empties the catalog; there is no retry state.
//
// A completion that lands after Reset has run is discarded, so a logout
// during an in-flight Load cannot repopulate the catalog.
func (c *AnimalContext) Load(ctx context.Context) error {
	if c.clinic.Status() != session.StatusAuthenticated {
		c.log.Warn(ctx, "catalog load requested without clinic session")
		return ErrNotAuthenticated
	}
	token := c.clinic.Token()

	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	animals, err := c.client.Animals(ctx, token)
	if err != nil {
		c.log.Error(ctx, "failed to load animal catalog", "error", err)
		c.replace(ctx, epoch, nil)
		return err
	}

	c.replace(ctx, epoch, animals)
	return nil
}

// Select sets the scoping key to one catalog entry. Ids outside the catalog
// are a caller error: the selection is left unchanged and ErrUnknownAnimal
// is returned.
func (c *AnimalContext) Select(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.catalog {
		if c.catalog[i].ID == id {
			animal := c.catalog[i]
			c.selected = &animal
			return nil
		}
	}
	return ErrUnknownAnimal
}

// SelectNone clears the selection, meaning "operate over the whole catalog".
func (c *AnimalContext) SelectNone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Reset clears catalog and selection and invalidates in-flight loads.
// Invoked on clinic-session teardown.
func (c *AnimalContext) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = nil
	c.selected = nil
	c.epoch = uuid.New()
}

// Selected returns the current selection, if any.
func (c *AnimalContext) Selected() (models.Animal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return models.Animal{}, false
	}
	return *c.selected, true
}

// Catalog returns a copy of the current catalog, in backend order.
func (c *AnimalContext) Catalog() []models.Animal {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Animal, len(c.catalog))
	copy(out, c.catalog)
	return out
}

// Filter returns the explicit scoping value pages pass into their queries.
// The zero filter means unscoped.
func (c *AnimalContext) Filter() api.ListFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return api.ListFilter{}
	}
	return api.ListFilter{AnimalID: c.selected.ID}
}

// replace swaps in a new catalog if the captured epoch is still current. A
// selection no longer present in the new catalog is dropped.
func (c *AnimalContext) replace(ctx context.Context, epoch uuid.UUID, animals []models.Animal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.log.Info(ctx, "discarding stale catalog load")
		return
	}
	c.catalog = animals
	if c.selected != nil {
		still := false
		for i := range animals {
			if animals[i].ID == c.selected.ID {
				still = true
				break
			}
		}
		if !still {
			c.selected = nil
		}
	}
}

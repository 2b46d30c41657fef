package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"

	"github.com/ekodina/vetdesk/internal/client/api"
	"github.com/ekodina/vetdesk/internal/client/config"
	"github.com/ekodina/vetdesk/internal/client/scope"
	"github.com/ekodina/vetdesk/internal/client/session"
	"github.com/ekodina/vetdesk/internal/client/tokenstore"
	"github.com/ekodina/vetdesk/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the composition root: one transport client shared by both
// session kinds (each request carries its own token), one token store with
// distinct per-kind keys, two session managers and the scoped-animal
// context bound to the clinic session's lifetime.
type App struct {
	config  *config.Config
	db      *sql.DB
	api     api.Client
	clinic  *session.Manager
	tutor   *session.Manager
	animals *scope.AnimalContext
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, store, err := tokenstore.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.HTTPTimeout)

	clinic := session.NewManager(session.Clinic(apiClient), store, log)
	tutor := session.NewManager(session.Client(apiClient), store, log)
	animals := scope.NewAnimalContext(apiClient, clinic, log)

	// The catalog follows the clinic session: load on entering
	// Authenticated, clear on leaving it. Never triggered speculatively.
	clinic.OnTransition(func(from, to session.Status) {
		switch to {
		case session.StatusAuthenticated:
			if err := animals.Load(context.Background()); err != nil {
				log.Warn(context.Background(), "initial catalog load failed", "error", err)
			}
		case session.StatusUnauthenticated:
			animals.Reset()
		}
	})

	return &App{
		config:  c,
		db:      db,
		api:     apiClient,
		clinic:  clinic,
		tutor:   tutor,
		animals: animals,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Boot initializes both sessions. The two calls are independent and run
// concurrently; nothing below depends on their relative order. Boot returns
// only after both have settled, so every login surface the REPL offers sees
// a session that has left Initializing.
func (a *App) Boot(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.clinic.Initialize(ctx)
	}()
	go func() {
		defer wg.Done()
		a.tutor.Initialize(ctx)
	}()
	wg.Wait()
}

// Run boots the sessions and hands control to the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Boot(ctx)
	a.Root(ctx)
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) clinicStatus() session.Status { return a.clinic.Status() }
func (a *App) tutorStatus() session.Status  { return a.tutor.Status() }

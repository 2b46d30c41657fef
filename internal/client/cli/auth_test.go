package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekodina/vetdesk/internal/client/api"
	"github.com/ekodina/vetdesk/internal/client/models"
	"github.com/ekodina/vetdesk/internal/client/scope"
	"github.com/ekodina/vetdesk/internal/client/session"
	"github.com/ekodina/vetdesk/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeAPI implements api.Client for shell tests.
type fakeAPI struct {
	mu sync.Mutex

	ClinicLoginErr error

	AnimalsRet []models.Animal

	AppointmentsRet     []models.Appointment
	AppointmentsFilters []api.ListFilter
}

func (f *fakeAPI) LoginClinic(ctx context.Context, identifier, secret string) (string, models.ClinicProfile, error) {
	if f.ClinicLoginErr != nil {
		return "", models.ClinicProfile{}, f.ClinicLoginErr
	}
	return "clinic-T", models.ClinicProfile{ID: 1, Name: "Acme Vet"}, nil
}

func (f *fakeAPI) LoginClient(ctx context.Context, identifier, secret string) (string, models.ClientProfile, error) {
	return "tutor-T", models.ClientProfile{ID: 2, Name: "Maria"}, nil
}

func (f *fakeAPI) ClinicProfile(ctx context.Context, token string) (models.ClinicProfile, error) {
	return models.ClinicProfile{ID: 1, Name: "Acme Vet"}, nil
}

func (f *fakeAPI) ClientProfile(ctx context.Context, token string) (models.ClientProfile, error) {
	return models.ClientProfile{ID: 2, Name: "Maria"}, nil
}

func (f *fakeAPI) Logout(ctx context.Context, token string) error { return nil }

func (f *fakeAPI) Animals(ctx context.Context, token string) ([]models.Animal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Animal(nil), f.AnimalsRet...), nil
}

func (f *fakeAPI) Appointments(ctx context.Context, token string, filter api.ListFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AppointmentsFilters = append(f.AppointmentsFilters, filter)
	return append([]models.Appointment(nil), f.AppointmentsRet...), nil
}

func (f *fakeAPI) DietLogs(ctx context.Context, token string, filter api.ListFilter) ([]models.DietLog, error) {
	return nil, nil
}

// memStore is a minimal in-memory token repository.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]string{}
	return nil
}

// testApp builds a shell over fakes, with both sessions already booted.
func testApp(t *testing.T, fake *fakeAPI) *App {
	t.Helper()
	log := testLogger()
	store := newMemStore()
	clinic := session.NewManager(session.Clinic(fake), store, log)
	tutor := session.NewManager(session.Client(fake), store, log)
	animals := scope.NewAnimalContext(fake, clinic, log)

	a := &App{
		api:     fake,
		clinic:  clinic,
		tutor:   tutor,
		animals: animals,
		log:     log,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
	a.Boot(context.Background())
	return a
}

func stubInputs(t *testing.T, email, password string) {
	t.Helper()
	oldText, oldPass := getSimpleText, getPassword
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		return email, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
	t.Cleanup(func() {
		getSimpleText = oldText
		getPassword = oldPass
	})
}

func TestLoginClinic_Succeeds(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "vet@acme.com", "secret")
	a := testApp(t, &fakeAPI{})

	require.NoError(t, a.LoginClinic(context.Background()))

	assert.Equal(t, session.StatusAuthenticated, a.clinic.Status())
	assert.Equal(t, session.StatusUnauthenticated, a.tutor.Status())
	assert.Contains(t, strings.Join(*out, ""), "Welcome, Acme Vet!")
}

func TestLoginClinic_RejectedPrintsDetailInline(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "vet@acme.com", "wrong")
	a := testApp(t, &fakeAPI{ClinicLoginErr: &api.StatusError{Code: 401, Detail: "invalid credentials"}})

	// a rejected login is handled, not returned
	require.NoError(t, a.LoginClinic(context.Background()))

	assert.Contains(t, strings.Join(*out, ""), "Login failed: invalid credentials")
	assert.Equal(t, session.StatusUnauthenticated, a.clinic.Status())
	assert.Equal(t, "invalid credentials", a.clinic.LastError())
}

func TestLogoutClinic_LeavesTutorSessionAlone(t *testing.T) {
	captureOutput(t)
	stubInputs(t, "someone@mail.com", "secret")
	a := testApp(t, &fakeAPI{})

	require.NoError(t, a.LoginClinic(context.Background()))
	require.NoError(t, a.LoginTutor(context.Background()))

	require.NoError(t, a.LogoutClinic(context.Background()))

	assert.Equal(t, session.StatusUnauthenticated, a.clinic.Status())
	assert.Equal(t, session.StatusAuthenticated, a.tutor.Status())
}

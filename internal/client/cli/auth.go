package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ekodina/vetdesk/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// LoginClinic prompts for clinic-staff credentials and authenticates the
// clinic session. The tutor session is untouched. A rejected login prints
// the backend's message inline and leaves the session state unchanged.
func (a *App) LoginClinic(ctx context.Context) error {
	return a.login(ctx, a.clinic)
}

// LoginTutor prompts for pet-tutor credentials and authenticates the tutor
// session. The clinic session is untouched.
func (a *App) LoginTutor(ctx context.Context) error {
	return a.login(ctx, a.tutor)
}

func (a *App) login(ctx context.Context, mgr *session.Manager) error {
	identifier, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	principal, err := mgr.Login(ctx, identifier, string(password))
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			printlnFn(fmt.Sprintf("Login failed: %s", authErr.Message))
			return nil
		}
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", principal.DisplayName()))
	return nil
}

// LogoutClinic tears down the clinic session. The tutor session, if
// authenticated, stays authenticated.
func (a *App) LogoutClinic(ctx context.Context) error {
	a.clinic.Logout(ctx)
	printlnFn("Clinic session closed.")
	return nil
}

// LogoutTutor tears down the tutor session only.
func (a *App) LogoutTutor(ctx context.Context) error {
	a.tutor.Logout(ctx)
	printlnFn("Tutor session closed.")
	return nil
}

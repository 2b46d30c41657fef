package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ekodina/vetdesk/internal/client/models"
	"github.com/ekodina/vetdesk/internal/client/scope"
)

// Animals reloads and prints the clinic's animal catalog. Reloading on every
// view is safe: Load replaces, never appends.
func (a *App) Animals(ctx context.Context) error {
	if err := a.animals.Load(ctx); err != nil {
		printlnFn("Could not load animals:", err)
		return err
	}

	catalog := a.animals.Catalog()
	if len(catalog) == 0 {
		printlnFn("No animals registered yet.")
		return nil
	}
	for _, animal := range catalog {
		marker := "  "
		if selected, ok := a.animals.Selected(); ok && selected.ID == animal.ID {
			marker = "* "
		}
		printlnFn(fmt.Sprintf("%s[%d] %s (%s %s)", marker, animal.ID, animal.Name, animal.Species, animal.Breed))
	}
	return nil
}

// Select scopes all clinic views to one animal by catalog id.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: select <animal id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Not an animal id:", args[0])
		return nil
	}
	if err := a.animals.Select(id); err != nil {
		if err == scope.ErrUnknownAnimal {
			printlnFn("No such animal in the catalog. Run 'animals' to see it.")
			return nil
		}
		return err
	}
	selected, _ := a.animals.Selected()
	printlnFn(fmt.Sprintf("Now showing data for %s only.", selected.Name))
	return nil
}

// SelectAll clears the scope so views cover the whole catalog again.
func (a *App) SelectAll(ctx context.Context) error {
	a.animals.SelectNone()
	printlnFn("Now showing data for all animals.")
	return nil
}

// Appointments lists clinic visits. The scoped-animal filter is passed
// explicitly into the query; the view itself does no filtering.
func (a *App) Appointments(ctx context.Context) error {
	filter := a.animals.Filter()
	appointments, err := a.api.Appointments(ctx, a.clinic.Token(), filter)
	if err != nil {
		printlnFn("Could not load appointments:", err)
		return err
	}
	if len(appointments) == 0 {
		printlnFn("No appointments.")
		return nil
	}
	for _, appt := range appointments {
		printlnFn(fmt.Sprintf("[%d] %s: %s (%s)", appt.ID, appt.Date, appt.Reason, appt.Status))
	}
	return nil
}

// Diets lists feeding-plan records under the same explicit filter.
func (a *App) Diets(ctx context.Context) error {
	filter := a.animals.Filter()
	diets, err := a.api.DietLogs(ctx, a.clinic.Token(), filter)
	if err != nil {
		printlnFn("Could not load diet logs:", err)
		return err
	}
	if len(diets) == 0 {
		printlnFn("No diet logs.")
		return nil
	}
	for _, diet := range diets {
		printlnFn(fmt.Sprintf("[%d] %s, %s (%s)", diet.ID, diet.Food, diet.Amount, diet.Schedule))
	}
	return nil
}

// ClinicProfile prints the authenticated clinic principal.
func (a *App) ClinicProfile(ctx context.Context) error {
	printPrincipal(a.clinic.Principal())
	return nil
}

// TutorProfile prints the authenticated tutor principal.
func (a *App) TutorProfile(ctx context.Context) error {
	printPrincipal(a.tutor.Principal())
	return nil
}

// Rename applies an in-memory name change to the clinic principal, the way
// the profile-edit page refreshes the header after a successful save.
func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: rename <new name>")
		return nil
	}
	name := args[0]
	a.clinic.UpdatePrincipal(models.ProfilePatch{Name: &name})
	printlnFn("Profile updated.")
	return nil
}

func printPrincipal(p models.Principal) {
	if p == nil {
		printlnFn("Not logged in.")
		return
	}
	printlnFn(fmt.Sprintf("#%d %s", p.PrincipalID(), p.DisplayName()))
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ekodina/vetdesk/internal/client/guard"
	"github.com/ekodina/vetdesk/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	LoginClinic(ctx context.Context) error
	LoginTutor(ctx context.Context) error
	LogoutClinic(ctx context.Context) error
	LogoutTutor(ctx context.Context) error
	Animals(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	SelectAll(ctx context.Context) error
	Appointments(ctx context.Context) error
	Diets(ctx context.Context) error
	ClinicProfile(ctx context.Context) error
	TutorProfile(ctx context.Context) error
	Rename(ctx context.Context, args []string) error
	clinicStatus() session.Status
	tutorStatus() session.Status
}

func (a *App) getStatus() string {
	parts := make([]string, 0, 2)
	if p := a.clinic.Principal(); p != nil {
		parts = append(parts, "clinic:"+p.DisplayName())
	}
	if p := a.tutor.Principal(); p != nil {
		parts = append(parts, "tutor:"+p.DisplayName())
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Root starts the interactive loop on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to VetDesk (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// admit runs the guard decision for one kind's command tree. Only Admit
// lets the command through; Wait and Redirect print what the user should do
// instead. The two kinds' guards are never combined: a clinic command never
// admits on an authenticated tutor session, and vice versa.
func admit(kind string, status session.Status) bool {
	switch guard.ForStatus(status) {
	case guard.Admit:
		return true
	case guard.Wait:
		printlnFn("Still checking your session, try again in a moment.")
		return false
	default:
		printlnFn(fmt.Sprintf("Please log in first with 'login %s'.", kind))
		return false
	}
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or when the user types "exit" or
// "quit". Errors returned by command handlers are ignored here; handlers
// print their own messages, which keeps the loop resilient and focused on
// I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vd %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Sessions: login clinic|tutor, logout clinic|tutor, status")
			printlnFn("Clinic:   animals, select <id>, all, appointments, diets, profile, rename <name>")
			printlnFn("Tutor:    myprofile")
			printlnFn("Other:    exit")

		case "status":
			printlnFn(fmt.Sprintf("clinic: %s, tutor: %s", a.clinicStatus(), a.tutorStatus()))

		case "login":
			switch pick(args) {
			case "clinic":
				if a.clinicStatus() != session.StatusInitializing {
					_ = a.LoginClinic(ctx)
				} else {
					printlnFn("Still checking your session, try again in a moment.")
				}
			case "tutor":
				if a.tutorStatus() != session.StatusInitializing {
					_ = a.LoginTutor(ctx)
				} else {
					printlnFn("Still checking your session, try again in a moment.")
				}
			default:
				printlnFn("Usage: login clinic|tutor")
			}

		case "logout":
			switch pick(args) {
			case "clinic":
				_ = a.LogoutClinic(ctx)
			case "tutor":
				_ = a.LogoutTutor(ctx)
			default:
				printlnFn("Usage: logout clinic|tutor")
			}

		case "animals":
			if admit("clinic", a.clinicStatus()) {
				_ = a.Animals(ctx)
			}

		case "select":
			if admit("clinic", a.clinicStatus()) {
				_ = a.Select(ctx, args)
			}

		case "all":
			if admit("clinic", a.clinicStatus()) {
				_ = a.SelectAll(ctx)
			}

		case "appointments":
			if admit("clinic", a.clinicStatus()) {
				_ = a.Appointments(ctx)
			}

		case "diets":
			if admit("clinic", a.clinicStatus()) {
				_ = a.Diets(ctx)
			}

		case "profile":
			if admit("clinic", a.clinicStatus()) {
				_ = a.ClinicProfile(ctx)
			}

		case "rename":
			if admit("clinic", a.clinicStatus()) {
				_ = a.Rename(ctx, args)
			}

		case "myprofile":
			if admit("tutor", a.tutorStatus()) {
				_ = a.TutorProfile(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func pick(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

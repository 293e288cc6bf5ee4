package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/psychicstar/internal/client/controller"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() controller.State
	touch()
	nextCommand(prompt string) (string, error)

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Resend(ctx context.Context) error
	Cancel(ctx context.Context) error
	Consent(ctx context.Context) error
	Quiz(ctx context.Context) error
	Mood(ctx context.Context, args []string) error
	Ask(ctx context.Context, args []string) error
	Readings(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Logout(ctx context.Context) error
}

func helpText(s controller.State) string {
	switch {
	case s == controller.StatePendingVerification:
		return "Available commands: verify <code>, resend, cancel, exit"
	case s == controller.StateNeedsConsent:
		return "Available commands: consent, logout, exit"
	case s == controller.StateNeedsQuiz:
		return "Available commands: quiz, logout, exit"
	case s.SignedIn():
		return "Available commands: ask [question], readings, show <n|id>, mood <1-5>, dashboard, logout, exit"
	default:
		return "Available commands: signup, login, exit"
	}
}

// runREPL reads commands until EOF or "exit"/"quit" and dispatches them to
// a. Every non-empty line resets the inactivity timer before it is handled.
// Handler errors are printed and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, w io.Writer) {
	for {
		line, err := a.nextCommand(fmt.Sprintf("psychic %s> ", statusFn()))
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		a.touch()

		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText(a.state()))
		case "signup", "register":
			err = a.Signup(ctx)
		case "login":
			err = a.Login(ctx)
		case "verify":
			err = a.Verify(ctx, args)
		case "resend":
			err = a.Resend(ctx)
		case "cancel":
			err = a.Cancel(ctx)
		case "consent":
			err = a.Consent(ctx)
		case "quiz":
			err = a.Quiz(ctx)
		case "mood":
			err = a.Mood(ctx, args)
		case "ask":
			err = a.Ask(ctx, args)
		case "readings", "l", "list":
			err = a.Readings(ctx)
		case "show":
			err = a.Show(ctx, args)
		case "dashboard", "back":
			err = a.Dashboard(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, err.Error())
		}
	}
}

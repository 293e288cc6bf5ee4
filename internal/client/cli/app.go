package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/psychicstar/internal/client/controller"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// syncWriter serializes writes from the REPL and the idle-timer callback.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type App struct {
	ctrl   *controller.Controller
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctrl *controller.Controller, in io.Reader, out io.Writer) *App {
	return &App{ctrl: ctrl, reader: bufio.NewReader(in), out: &syncWriter{w: out}}
}

// Run restores a previous session if there is one and runs the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.ctrl.Close()

	fmt.Fprintln(a.out, "Welcome to Psychic Star (type 'help' for commands)")
	if err := a.ctrl.Start(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
	}
	if a.ctrl.View().State.SignedIn() {
		a.printNextStep()
	}

	runREPL(ctx, a, a.getStatus, a.out)
}

// Expired announces an inactivity sign-out. It is meant to be used as the
// controller's OnExpire callback.
func (a *App) Expired() {
	fmt.Fprintln(a.out, "\nYour session ended after a period of inactivity. Please log in again.")
}

func (a *App) state() controller.State {
	return a.ctrl.View().State
}

func (a *App) touch() {
	a.ctrl.Touch()
}

// readLine prompts for one line. Any answer counts as activity.
func (a *App) readLine(prompt string) (string, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	a.touch()
	return s, nil
}

func (a *App) nextCommand(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (a *App) getStatus() string {
	v := a.ctrl.View()
	s := string(v.State)
	switch {
	case v.User != nil:
		s = v.User.Name + " " + s
	case v.PendingEmail != "":
		s = v.PendingEmail + " " + s
	}
	if v.Busy {
		s += " ..."
	}
	return fmt.Sprintf("(%s)", s)
}

// printNextStep tells the user what the current state expects.
func (a *App) printNextStep() {
	v := a.ctrl.View()
	switch v.State {
	case controller.StatePendingVerification:
		fmt.Fprintf(a.out, "A verification code was sent to %s. Enter it with 'verify <code>'.\n", v.PendingEmail)
	case controller.StateNeedsConsent:
		fmt.Fprintln(a.out, "Before the Collective can read your energy, type 'consent'.")
	case controller.StateNeedsQuiz:
		fmt.Fprintln(a.out, "Calibrate your profile with the personality quiz: type 'quiz'.")
	case controller.StateDashboard:
		printDashboard(a.out, v)
	case controller.StateReadingDetail:
		if v.Current != nil {
			printReading(a.out, *v.Current)
		}
	}
}

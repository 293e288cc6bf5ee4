package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/psychicstar/internal/client/controller"
)

type fakeExec struct {
	st      controller.State
	reader  *bufio.Reader
	touches int

	calls []string
	args  [][]string
}

func (f *fakeExec) state() controller.State { return f.st }
func (f *fakeExec) touch()                  { f.touches++ }
func (f *fakeExec) nextCommand(string) (string, error) {
	return f.reader.ReadString('\n')
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Signup(context.Context) error {
	f.st = controller.StatePendingVerification
	return f.record("signup", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.st = controller.StateDashboard
	return f.record("login", nil)
}
func (f *fakeExec) Verify(_ context.Context, args []string) error { return f.record("verify", args) }
func (f *fakeExec) Resend(context.Context) error                  { return f.record("resend", nil) }
func (f *fakeExec) Cancel(context.Context) error                  { return f.record("cancel", nil) }
func (f *fakeExec) Consent(context.Context) error                 { return f.record("consent", nil) }
func (f *fakeExec) Quiz(context.Context) error                    { return f.record("quiz", nil) }
func (f *fakeExec) Mood(_ context.Context, args []string) error   { return f.record("mood", args) }
func (f *fakeExec) Ask(_ context.Context, args []string) error    { return f.record("ask", args) }
func (f *fakeExec) Readings(context.Context) error                { return f.record("readings", nil) }
func (f *fakeExec) Show(_ context.Context, args []string) error   { return f.record("show", args) }
func (f *fakeExec) Dashboard(context.Context) error               { return f.record("dashboard", nil) }
func (f *fakeExec) Logout(context.Context) error {
	f.st = controller.StateUnauthenticated
	return f.record("logout", nil)
}

func newFakeExec(lines ...string) *fakeExec {
	return &fakeExec{
		st:     controller.StateUnauthenticated,
		reader: bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
	}
}

func TestRunREPL_Dispatch(t *testing.T) {
	exec := newFakeExec(
		"help",
		"login",
		"",
		"help",
		"ask will I find it?",
		"readings",
		"show 2",
		"mood 4",
		"dashboard",
		"foobar",
		"logout",
		"exit",
		"login",
	)
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "status" }, &out)

	assert.Equal(t, []string{"login", "ask", "readings", "show", "mood", "dashboard", "logout"}, exec.calls)
	assert.Equal(t, []string{"will", "I", "find", "it?"}, exec.args[1])
	assert.Equal(t, []string{"2"}, exec.args[3])
	assert.Equal(t, 11, exec.touches)

	s := out.String()
	assert.Contains(t, s, "Available commands: signup, login, exit")
	assert.Contains(t, s, "Available commands: ask [question]")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := newFakeExec("signup", "verify 123456")
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "s" }, &out)

	assert.Equal(t, []string{"signup", "verify"}, exec.calls)
	assert.NotContains(t, out.String(), "Bye!")
}

func TestHelpText(t *testing.T) {
	tests := []struct {
		state controller.State
		want  string
	}{
		{controller.StateUnauthenticated, "signup"},
		{controller.StatePendingVerification, "verify <code>"},
		{controller.StateNeedsConsent, "consent"},
		{controller.StateNeedsQuiz, "quiz"},
		{controller.StateDashboard, "ask"},
		{controller.StateReadingDetail, "show"},
		{controller.StateComposingReading, "readings"},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Contains(t, helpText(tt.state), tt.want)
		})
	}
}

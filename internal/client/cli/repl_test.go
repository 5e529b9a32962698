package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                       { return s.loggedIn }
func (s *stubExec) Login(ctx context.Context) error        { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error       { return s.record("logout") }
func (s *stubExec) Me(ctx context.Context) error           { return s.record("me") }
func (s *stubExec) Subjects(ctx context.Context) error     { return s.record("subjects") }
func (s *stubExec) Batches(ctx context.Context) error      { return s.record("batches") }
func (s *stubExec) Students(ctx context.Context) error     { return s.record("students") }
func (s *stubExec) Courses(ctx context.Context) error      { return s.record("courses") }
func (s *stubExec) Universities(ctx context.Context) error { return s.record("universities") }
func (s *stubExec) Location(ctx context.Context) error     { return s.record("location") }
func (s *stubExec) CheckWindow(ctx context.Context) error  { return s.record("check") }
func (s *stubExec) Mark(ctx context.Context) error         { return s.record("mark") }
func (s *stubExec) OpenWindow(ctx context.Context) error   { return s.record("window") }
func (s *stubExec) Profile(ctx context.Context) error      { return s.record("profile") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	return &lines
}

func runScript(t *testing.T, a execIface, script string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "(test)" }, scanner)
}

func TestREPL_DispatchesCommands(t *testing.T) {
	_ = captureOutput(t)
	a := &stubExec{loggedIn: true}

	runScript(t, a, "me\nsubjects\ncheck\nmark\nlocation\nwindow\nprofile\nlogout\nexit\n")

	assert.Equal(t, []string{"me", "subjects", "check", "mark", "location", "window", "profile", "logout"}, a.calls)
}

func TestREPL_ExitStopsTheLoop(t *testing.T) {
	lines := captureOutput(t)
	a := &stubExec{}

	runScript(t, a, "exit\nme\n")

	require.Empty(t, a.calls, "nothing dispatched after exit")
	assert.Contains(t, *lines, "Bye!")
}

func TestREPL_QuitIsAnAliasForExit(t *testing.T) {
	lines := captureOutput(t)
	runScript(t, &stubExec{}, "quit\n")
	assert.Contains(t, *lines, "Bye!")
}

func TestREPL_UnknownCommandIsReported(t *testing.T) {
	lines := captureOutput(t)
	runScript(t, &stubExec{}, "frobnicate\nexit\n")

	found := false
	for _, l := range *lines {
		if strings.Contains(l, "Unknown command") && strings.Contains(l, "frobnicate") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestREPL_BlankLinesAreIgnored(t *testing.T) {
	_ = captureOutput(t)
	a := &stubExec{}
	runScript(t, a, "\n   \nexit\n")
	require.Empty(t, a.calls)
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	lines := captureOutput(t)
	runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(*lines, "\n"), "login, exit")

	lines = captureOutput(t)
	runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(*lines, "\n"), "mark, window, profile")
}

func TestREPL_EOFEndsTheLoop(t *testing.T) {
	_ = captureOutput(t)
	a := &stubExec{}
	runScript(t, a, "me\n")
	assert.Equal(t, []string{"me"}, a.calls)
}

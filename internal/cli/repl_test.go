package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(context.Context) error                { return f.record("list") }
func (f *fakeExec) Page(_ context.Context, arg string) error   { return f.record("page " + arg) }
func (f *fakeExec) Next(context.Context) error                { return f.record("next") }
func (f *fakeExec) Prev(context.Context) error                { return f.record("prev") }
func (f *fakeExec) Search(_ context.Context, t string) error   { return f.record("search " + t) }
func (f *fakeExec) Sort(_ context.Context, arg string) error   { return f.record("sort " + arg) }
func (f *fakeExec) Show(_ context.Context, arg string) error   { return f.record("show " + arg) }
func (f *fakeExec) Edit(_ context.Context, arg string) error   { return f.record("edit " + arg) }
func (f *fakeExec) Delete(_ context.Context, arg string) error { return f.record("delete " + arg) }
func (f *fakeExec) Reset(context.Context) error               { return f.record("reset") }
func (f *fakeExec) Session(context.Context) error             { return f.record("session") }
func (f *fakeExec) Forget(context.Context) error {
	f.loggedIn = false
	return f.record("forget")
}

func run(t *testing.T, exec *fakeExec, input string) []string {
	t.Helper()
	out := silencePrintln(t)
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))
	return *out
}

func TestRunREPL_DispatchesWithArguments(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	run(t, exec, strings.Join([]string{
		"list",
		"l",
		"page 2",
		"next",
		"prev",
		"search  amy zed ",
		"search",
		"sort nameAsc",
		"show 3",
		"edit 3",
		"delete 4",
		"reset",
		"logout",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{
		"list", "list", "page 2", "next", "prev",
		"search amy zed", "search ",
		"sort nameAsc", "show 3", "edit 3", "delete 4", "reset", "logout",
	}, exec.calls)
}

func TestRunREPL_GuardsCommandsWhenLoggedOut(t *testing.T) {
	exec := &fakeExec{}
	out := run(t, exec, "list\ndelete 1\nhelp\nlogin\nlist\nquit\n")

	assert.Equal(t, []string{"login", "list"}, exec.calls)
	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, helpAnonymous)
	assert.Equal(t, "Bye!", out[len(out)-1])
}

func TestRunREPL_HelpWhenLoggedIn(t *testing.T) {
	out := run(t, &fakeExec{loggedIn: true}, "help\n")
	assert.Contains(t, out, helpLoggedIn)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := run(t, &fakeExec{}, "\n\nexit\n")
	assert.Equal(t, "uc status> ", out[0])
	assert.Len(t, out, 4)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	out := run(t, exec, "foobar 1\n")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Empty(t, exec.calls)
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{loggedIn: true, err: errors.New("boom")}
	out := run(t, exec, "list\nnext\n")
	assert.Equal(t, []string{"list", "next"}, exec.calls)
	assert.Contains(t, out, "error: boom")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	run(t, exec, "page 1\nshow 2")
	assert.Equal(t, []string{"page 1", "show 2"}, exec.calls)
}

func TestRunREPL_EOFStops(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	out := run(t, exec, "")
	assert.Empty(t, exec.calls)
	assert.Len(t, out, 1)
}

func TestRunREPL_SessionCommandsNeedNoLogin(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	run(t, exec, "session\nforget\nsession\nlist\nexit\n")

	assert.Equal(t, []string{"session", "forget", "session"}, exec.calls)
}

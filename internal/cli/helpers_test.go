package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userconsole/internal/actions"
	"github.com/dmitrijs2005/userconsole/internal/logging"
	"github.com/dmitrijs2005/userconsole/internal/mockapi"
	"github.com/dmitrijs2005/userconsole/internal/remote"
	"github.com/dmitrijs2005/userconsole/internal/session"
	"github.com/dmitrijs2005/userconsole/internal/usercache"
	"github.com/go-playground/validator/v10"
)

type fakeAuth struct {
	loggedIn bool
	user     string

	loginEmail    string
	loginPassword string
	loginErr      error
	logoutCalled  bool
	logoutErr     error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn, f.user = true, email
	return nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedIn, f.user = false, ""
	return nil
}

func (f *fakeAuth) IsAuthenticated(context.Context) (bool, error) { return f.loggedIn, nil }
func (f *fakeAuth) CurrentUser(context.Context) (string, error)   { return f.user, nil }

type testApp struct {
	*App
	out   *bytes.Buffer
	api   *mockapi.Server
	auth  *fakeAuth
	store *session.MemoryStore
}

// newTestApp builds an App over the demo upstream with input as stdin.
func newTestApp(t *testing.T, input string, opts ...mockapi.Option) *testApp {
	t.Helper()

	api := mockapi.New(opts...)
	ts := httptest.NewServer(api.Handler())
	t.Cleanup(ts.Close)

	store := session.NewMemoryStore()
	auth := &fakeAuth{loggedIn: true, user: "eve.holt@reqres.in"}
	out := &bytes.Buffer{}
	logger := logging.NewNopLogger()

	client := remote.NewRESTClient(ts.URL + "/api")
	app := &App{
		sessionID: "test-session",
		store:     store,
		client:    client,
		cache:     usercache.New(client, store, logger),
		auth:      auth,
		confirm:   actions.NewConfirmer(),
		validate:  validator.New(),
		logger:    logger,
		reader:    bufio.NewReader(strings.NewReader(input)),
		out:       out,
	}
	return &testApp{App: app, out: out, api: api, auth: auth, store: store}
}

// silencePrintln captures what the REPL prints.
func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

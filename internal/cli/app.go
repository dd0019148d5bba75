package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/userconsole/internal/actions"
	"github.com/dmitrijs2005/userconsole/internal/config"
	"github.com/dmitrijs2005/userconsole/internal/logging"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/dmitrijs2005/userconsole/internal/remote"
	"github.com/dmitrijs2005/userconsole/internal/services"
	"github.com/dmitrijs2005/userconsole/internal/session"
	"github.com/dmitrijs2005/userconsole/internal/usercache"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type App struct {
	config    *config.Config
	sessionID string
	store     session.Store
	client    remote.Client
	cache     *usercache.Cache
	auth      services.AuthService
	confirm   *actions.Confirmer
	validate  *validator.Validate
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	userName string
	loaded   bool
}

// NewApp wires the session store, the upstream client, the cache and the
// auth service for one console session. A fresh session id is generated
// unless c.SessionID asks to resume one.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	sessionID := c.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	store, err := session.Open(ctx, c, sessionID)
	if err != nil {
		logger.Error(ctx, "error opening session store", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	client := remote.NewRESTClient(c.APIBaseURL,
		remote.WithAPIKey(c.APIKey),
		remote.WithTimeout(c.RequestTimeout),
	)

	return &App{
		config:    c,
		sessionID: sessionID,
		store:     store,
		client:    client,
		cache:     usercache.New(client, store, logger),
		auth:      services.NewAuthService(client, store),
		confirm:   actions.NewConfirmer(),
		validate:  validator.New(),
		logger:    logger.With("session", sessionID),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run greets the user, restores a still valid login or asks for one and
// then serves commands until exit or EOF. The cache and the store are
// closed on return.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	fmt.Fprintln(a.out, "Welcome to User Console (type 'help' for commands)")
	fmt.Fprintf(a.out, "Session %s (resume with -S %s)\n", a.sessionID, a.sessionID)

	if a.isLoggedIn(ctx) {
		a.userName, _ = a.auth.CurrentUser(ctx)
		report(a.List(ctx))
	} else {
		report(a.Login(ctx))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	a.dropPending(ctx)
	if err := a.cache.Close(ctx); err != nil {
		a.logger.Warn(ctx, "error closing cache", "error", err)
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn(ctx, "error closing session store", "error", err)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.auth.IsAuthenticated(ctx)
	if err != nil {
		a.logger.Warn(ctx, "auth check failed", "error", err)
		return false
	}
	return ok
}

// ensureLoaded initializes the cache on first use after login.
func (a *App) ensureLoaded(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	fmt.Fprintln(a.out, "Loading users...")
	if err := a.cache.Initialize(ctx); err != nil {
		return err
	}
	a.loaded = true
	return nil
}

func (a *App) getStatus() string {
	var parts []string
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.loaded {
		p := a.cache.View()
		parts = append(parts, fmt.Sprintf("page %d/%d", p.CurrentPage, p.TotalPages))
		if p.SearchTerm != "" {
			parts = append(parts, fmt.Sprintf("search=%q", p.SearchTerm))
		}
		if p.Sort != models.SortNone {
			parts = append(parts, "sort="+string(p.Sort))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

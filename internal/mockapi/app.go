package mockapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/userconsole/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// App serves the demo API until its context is cancelled or a termination
// signal arrives.
type App struct {
	addr   string
	server *Server
	logger logging.Logger
}

func NewApp(addr string, server *Server, logger logging.Logger) *App {
	return &App{addr: addr, server: server, logger: logger}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address and blocks until shutdown.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.addr)
	if err != nil {
		return err
	}
	return app.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Handler:           app.server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting demo API...", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down demo API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

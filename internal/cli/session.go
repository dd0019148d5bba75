package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/userconsole/internal/usercache"
)

// Session prints the session id and what the session store holds for it.
func (a *App) Session(ctx context.Context) error {
	entries, err := a.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list session: %w", err)
	}

	fmt.Fprintf(a.out, "Session %s (%s store)\n", a.sessionID, a.storeBackend())
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Nothing stored")
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		fmt.Fprintf(a.out, "  %-16s %d bytes\n", key, len(entries[key]))
	}
	return nil
}

// Forget wipes the session: the token, the cached users and any
// unanswered confirmation. The user has to log in again afterwards.
func (a *App) Forget(ctx context.Context) error {
	a.dropPending(ctx)

	if err := a.cache.Close(ctx); err != nil {
		a.logger.Warn(ctx, "error closing cache", "error", err)
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	a.cache = usercache.New(a.client, a.store, a.logger)
	a.userName = ""
	a.loaded = false

	a.logger.Info(ctx, "session cleared")
	fmt.Fprintln(a.out, "Session cleared")
	return nil
}

// dropPending cancels confirmations nobody answered.
func (a *App) dropPending(ctx context.Context) {
	for _, p := range a.confirm.Pending() {
		if err := a.confirm.Cancel(p.Token); err == nil {
			a.logger.Debug(ctx, "dropped unanswered confirmation", "kind", p.Kind, "target", p.Target)
		}
	}
}

func (a *App) storeBackend() string {
	if a.config == nil || a.config.StoreBackend == "" {
		return "memory"
	}
	return a.config.StoreBackend
}

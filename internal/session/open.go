package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userconsole/internal/config"
)

// Open builds the backend selected by cfg.StoreBackend for sessionID.
func Open(ctx context.Context, cfg *config.Config, sessionID string) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath, sessionID, cfg.SessionTTL)
	case config.StoreRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, sessionID, cfg.SessionTTL)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

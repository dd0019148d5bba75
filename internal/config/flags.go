package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userconsole/internal/flagx"
)

var knownFlags = []string{"-a", "-k", "-s", "-d", "-r", "-S", "-t", "-l"}

// parseFlags populates Config fields from command-line flags. Arguments
// belonging to other flag sets (-c/-config) are filtered out first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the user API")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key sent as x-api-key")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "session store backend (sqlite|redis|memory)")
	fs.StringVar(&cfg.SQLitePath, "d", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.SessionID, "S", cfg.SessionID, "session id to resume")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

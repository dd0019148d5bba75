package config

import (
	"github.com/dmitrijs2005/userconsole/internal/flagx"
	"github.com/spf13/viper"
)

// parseFile overlays cfg with values from the file named by -c/-config.
// Keys absent from the file keep their current value. The format is taken
// from the file extension. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		panic(err)
	}
}

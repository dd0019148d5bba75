package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userconsole/internal/buildinfo"
	"github.com/dmitrijs2005/userconsole/internal/cli"
	"github.com/dmitrijs2005/userconsole/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/userconsole/internal/logging"
	"github.com/dmitrijs2005/userconsole/internal/mockapi"
)

func main() {

	addr := flag.String("a", "localhost:8080", "listen address")
	apiKey := flag.String("k", "", "require this x-api-key on every request")
	level := flag.String("l", "info", "log level (debug|info|warn|error)")
	flag.Parse()

	logger := logging.NewTextLogger(os.Stderr, *level)
	app := mockapi.NewApp(*addr, mockapi.New(mockapi.WithAPIKey(*apiKey)), logger)

	if err := app.Run(context.Background()); err != nil {
		log.Printf("%v", err)
		return
	}

}

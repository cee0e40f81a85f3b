package main

import (
	"context"
	"log"
	"os"

	"focusd/internal/cli"
	"focusd/internal/config"
	"focusd/internal/flagx"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	// config flags (-c/-config, -d, -t, -w, -l) are global; everything
	// left over is the subcommand and its own flags.
	args := flagx.StripArgs(os.Args[1:], []string{"-c", "-config", "-d", "-t", "-w", "-l"})

	if err := app.Run(context.Background(), args); err != nil {
		os.Exit(1)
	}
}

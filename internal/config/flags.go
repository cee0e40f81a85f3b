package config

import (
	"flag"
	"os"
	"time"

	"focusd/internal/flagx"
)

// jsonConfigPath is indirected so tests can avoid touching os.Args.
var jsonConfigPath = flagx.JsonConfigFlags

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the sqlite database file
//	-t int      provider call timeout in seconds
//	-w int      bounded store worker count
//	-l string   log level
//
// os.Args is filtered to the flags handled here so subcommand arguments do
// not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the gateway database")
	timeoutSecs := fs.Int64("t", int64(cfg.ProviderTimeout.Seconds()), "provider call timeout (in seconds)")
	fs.Int64Var(&cfg.StoreWorkers, "w", cfg.StoreWorkers, "bounded store worker count")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProviderTimeout = time.Duration(*timeoutSecs) * time.Second
}

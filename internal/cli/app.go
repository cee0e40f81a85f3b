// Package cli is the command-line surface of the gateway. Every subcommand
// is a thin wrapper over the services layer; secrets are read from the
// terminal without echo and never appear in argv.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"focusd/internal/config"
	"focusd/internal/dbx"
	"focusd/internal/keyringx"
	"focusd/internal/logging"
	"focusd/internal/secrets"
	"focusd/internal/services"
	"focusd/internal/store"

	_ "modernc.org/sqlite"
)

type App struct {
	cfg        *config.Config
	db         *sql.DB
	repos      *store.Repositories
	resolver   *secrets.Resolver
	keys       *services.KeyService
	generation *services.GenerationService
	log        logging.Logger
	in         *bufio.Reader
	out        io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewDefault(cfg.LogLevel)

	repos, db, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	pool := dbx.NewPool(cfg.StoreWorkers)
	resolver := secrets.NewResolver(keyringx.NewSystemStore(), secrets.NewMasterCache(), repos.APIKeys, pool, log)

	return &App{
		cfg:        cfg,
		db:         db,
		repos:      repos,
		resolver:   resolver,
		keys:       services.NewKeyService(resolver, log),
		generation: services.NewGenerationService(repos.Users, repos.Templates, repos.Journal, resolver, pool, log),
		log:        log,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run dispatches args (without the program name) to a subcommand handler.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "set-key":
		return a.cmdSetKey(ctx, rest)
	case "get-key":
		return a.cmdGetKey(ctx, rest)
	case "delete-key":
		return a.cmdDeleteKey(ctx, rest)
	case "store-master":
		return a.cmdStoreMaster(rest)
	case "cache-master":
		return a.cmdCacheMaster(rest)
	case "clear-master":
		return a.cmdClearMaster(rest)
	case "opt-in":
		return a.cmdOptIn(ctx, rest)
	case "set-template":
		return a.cmdSetTemplate(ctx, rest)
	case "templates":
		return a.cmdTemplates(ctx, rest)
	case "journal":
		return a.cmdJournal(ctx, rest)
	case "generate":
		return a.cmdGenerate(ctx, rest)
	case "probe":
		return a.cmdProbe(ctx, rest)
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: gateway <command> [flags]

Commands:
  set-key       store an encrypted provider api key (prompts for key and passphrase)
  get-key       decrypt and print a provider api key (prompts for passphrase)
  delete-key    remove a provider api key
  store-master  put a master secret into the OS keyring (prompts for secret)
  cache-master  hold a master secret in memory for this process (prompts for secret)
  clear-master  drop a cached master secret
  opt-in        record a user's AI consent decision
  set-template  create or replace a prompt template (body read from stdin)
  templates     list a user's prompt templates
  journal       list a user's recent journal entries
  generate      run the generation pipeline and save the result
  probe         smoke-test a provider with a key from the environment
  help          show this text

Run 'gateway <command> -h' for the flags of a command.`)
}

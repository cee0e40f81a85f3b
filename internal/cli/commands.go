package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"focusd/internal/provider"
	"focusd/internal/services"
)

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// printResult renders a service Result in a shape scripts can grep.
func (a *App) printResult(res *services.Result) error {
	if !res.Success {
		fmt.Fprintf(a.out, "error (%s): %s\n", res.Code, res.Message)
		return fmt.Errorf("%s", res.Code)
	}
	if res.Code != "" {
		fmt.Fprintf(a.out, "ok (%s): %s\n", res.Code, res.Message)
	} else if res.Message != "" {
		fmt.Fprintf(a.out, "ok: %s\n", res.Message)
	} else {
		fmt.Fprintln(a.out, "ok")
	}
	if res.Content != "" {
		fmt.Fprintln(a.out, res.Content)
	}
	return nil
}

func (a *App) cmdSetKey(ctx context.Context, args []string) error {
	fs := a.flagSet("set-key")
	user := fs.Int64("u", 0, "user id")
	prov := fs.String("p", "", "provider name (chatgpt|gemini)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	apiKey, err := getSecret(a.out, "Enter api key: ")
	if err != nil {
		return err
	}
	passphrase, err := getSecret(a.out, "Enter master passphrase: ")
	if err != nil {
		return err
	}

	return a.printResult(a.keys.Set(ctx, *user, *prov, apiKey, passphrase))
}

func (a *App) cmdGetKey(ctx context.Context, args []string) error {
	fs := a.flagSet("get-key")
	user := fs.Int64("u", 0, "user id")
	prov := fs.String("p", "", "provider name (chatgpt|gemini)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	passphrase, err := getSecret(a.out, "Enter master passphrase: ")
	if err != nil {
		return err
	}

	res := a.keys.Get(ctx, *user, *prov, passphrase)
	if res.Success && res.Content == "" {
		fmt.Fprintln(a.out, "no key stored")
		return nil
	}
	return a.printResult(res)
}

func (a *App) cmdDeleteKey(ctx context.Context, args []string) error {
	fs := a.flagSet("delete-key")
	user := fs.Int64("u", 0, "user id")
	prov := fs.String("p", "", "provider name (chatgpt|gemini)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.printResult(a.keys.Delete(ctx, *user, *prov))
}

func (a *App) cmdStoreMaster(args []string) error {
	fs := a.flagSet("store-master")
	label := fs.String("label", "work", "master secret label")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := getSecret(a.out, "Enter master secret: ")
	if err != nil {
		return err
	}
	if err := a.resolver.StoreInKeyring(*label, secret); err != nil {
		return fmt.Errorf("storing master secret: %w", err)
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

// cmdCacheMaster holds a secret in memory only. The cache dies with the
// process, so this is mostly useful to the host shell embedding this package.
func (a *App) cmdCacheMaster(args []string) error {
	fs := a.flagSet("cache-master")
	label := fs.String("label", "work", "master secret label")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := getSecret(a.out, "Enter master secret: ")
	if err != nil {
		return err
	}
	a.resolver.CacheTemporary(*label, secret)
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) cmdClearMaster(args []string) error {
	fs := a.flagSet("clear-master")
	label := fs.String("label", "work", "master secret label")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.resolver.ClearCache(*label)
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) cmdOptIn(ctx context.Context, args []string) error {
	fs := a.flagSet("opt-in")
	user := fs.Int64("u", 0, "user id")
	allow := fs.Bool("allow", false, "grant AI consent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.repos.Users.Ensure(ctx, *user); err != nil {
		return err
	}
	if err := a.repos.Users.SetAIOptIn(ctx, *user, *allow); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user %d opt-in set to %v\n", *user, *allow)
	return nil
}

func (a *App) cmdSetTemplate(ctx context.Context, args []string) error {
	fs := a.flagSet("set-template")
	user := fs.Int64("u", 0, "user id")
	name := fs.String("name", "", "template name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("template name is required")
	}

	body, err := getMultiline(a.in, a.out, "Enter template body")
	if err != nil {
		return err
	}
	if body == "" {
		return fmt.Errorf("template body is empty")
	}

	if err := a.repos.Users.Ensure(ctx, *user); err != nil {
		return err
	}
	if err := a.repos.Templates.Set(ctx, *user, *name, body); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "template %q saved\n", *name)
	return nil
}

func (a *App) cmdTemplates(ctx context.Context, args []string) error {
	fs := a.flagSet("templates")
	user := fs.Int64("u", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.repos.Templates.List(ctx, *user)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "no templates")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "%s\t%s\n", t.Name, t.Body)
	}
	return nil
}

func (a *App) cmdJournal(ctx context.Context, args []string) error {
	fs := a.flagSet("journal")
	user := fs.Int64("u", 0, "user id")
	limit := fs.Int64("n", 10, "max entries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := a.repos.Journal.ListRecent(ctx, *user, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "no journal entries")
		return nil
	}
	for _, e := range entries {
		model := "-"
		if e.Model != nil {
			model = *e.Model
		}
		fmt.Fprintf(a.out, "#%d %s %s/%s\n%s\n", e.ID, e.CreatedAt, e.Provider, model, e.Content)
	}
	return nil
}

func (a *App) cmdGenerate(ctx context.Context, args []string) error {
	fs := a.flagSet("generate")
	user := fs.Int64("u", 0, "user id")
	prov := fs.String("p", "", "provider name (chatgpt|gemini)")
	label := fs.String("label", "work", "master secret label")
	tpl := fs.String("template", "daily_note", "prompt template name")
	model := fs.String("model", "", "provider model override")
	timeout := fs.Duration("timeout", 0, "per-call timeout (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := services.GenerateParams{
		UserID:       *user,
		Provider:     *prov,
		MasterLabel:  *label,
		TemplateName: *tpl,
		Model:        *model,
		Timeout:      a.cfg.ProviderTimeout,
	}
	if *timeout > 0 {
		p.Timeout = *timeout
	}

	res, err := a.generation.Generate(ctx, p)
	if err != nil {
		return err
	}
	return a.printResult(res)
}

// cmdProbe fires one short request at a provider using a key taken from the
// environment. Nothing is stored and consent is not consulted, which keeps
// the command safe to run against a fresh database.
func (a *App) cmdProbe(ctx context.Context, args []string) error {
	fs := a.flagSet("probe")
	prov := fs.String("p", "", "provider name (chatgpt|gemini)")
	model := fs.String("model", "", "provider model override")
	keyEnv := fs.String("key-env", "", "environment variable holding the api key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env := *keyEnv
	if env == "" {
		switch *prov {
		case "gemini", "google":
			env = "GEMINI_API_KEY"
		default:
			env = "OPENAI_API_KEY"
		}
	}
	apiKey := os.Getenv(env)
	if apiKey == "" {
		return fmt.Errorf("no api key in $%s", env)
	}

	client, err := provider.ForName(*prov, a.log)
	if err != nil {
		return err
	}

	text, err := client.Call(ctx, apiKey, "Reply with the single word OK.", provider.Options{
		Timeout: 15 * time.Second,
		Model:   *model,
	})
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	fmt.Fprintf(a.out, "%s responded: %s\n", client.Name(), text)
	return nil
}

// Package services composes the gateway subsystems into the end-to-end
// generation flow: consent check, template resolution, secret resolution,
// provider call, safety gate, persistence.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"focusd/internal/common"
	"focusd/internal/dbx"
	"focusd/internal/logging"
	"focusd/internal/provider"
	"focusd/internal/safety"
	"focusd/internal/secrets"
	journalrepo "focusd/internal/store/journal"
	"focusd/internal/store/templates"
	"focusd/internal/store/users"

	"github.com/google/uuid"
)

// Result is the structured outcome returned to callers. On success Content
// carries the original (pre-redaction) provider text; only the redacted copy
// is ever persisted. Code is empty on a clean success.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Result codes surfaced to callers.
const (
	CodePolicyViolation = "policy_violation"
	CodeProviderError   = "provider_error"
	CodeSaveError       = "save_error"
	CodeKeyError        = "key_error"
)

// journalInstruction is what the {{prompt}} marker expands to in templates.
const journalInstruction = "Please summarize my day and generate a short lockscreen note."

// GenerateParams identify one generation request. Timeout and Model are
// optional; zero values mean the provider defaults.
type GenerateParams struct {
	UserID       int64
	Provider     string
	MasterLabel  string
	TemplateName string
	Timeout      time.Duration
	Model        string
}

type GenerationService struct {
	users     users.Repository
	templates templates.Repository
	journal   journalrepo.Repository
	resolver  *secrets.Resolver
	pool      *dbx.Pool
	clientFor func(name string) (provider.Client, error)
	log       logging.Logger
}

func NewGenerationService(
	usersRepo users.Repository,
	templatesRepo templates.Repository,
	journalRepo journalrepo.Repository,
	resolver *secrets.Resolver,
	pool *dbx.Pool,
	log logging.Logger,
) *GenerationService {
	return &GenerationService{
		users:     usersRepo,
		templates: templatesRepo,
		journal:   journalRepo,
		resolver:  resolver,
		pool:      pool,
		clientFor: func(name string) (provider.Client, error) { return provider.ForName(name, log) },
		log:       log.With("component", "generation"),
	}
}

// Generate runs the full pipeline for a user/provider pair. Failures before
// the provider call (no consent, missing template, missing secrets) come back
// as sentinel errors; once the provider has been called, outcomes are encoded
// in the Result so a policy rejection or a storage hiccup is not confused
// with a broken request.
func (s *GenerationService) Generate(ctx context.Context, p GenerateParams) (*Result, error) {
	log := s.log.With("request_id", uuid.NewString(), "user_id", p.UserID, "provider", p.Provider)

	if err := s.checkConsent(ctx, p.UserID); err != nil {
		return nil, err
	}

	var body string
	var found bool
	err := s.pool.Run(ctx, func() error {
		var err error
		body, found, err = s.templates.Get(ctx, p.UserID, p.TemplateName)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrorTemplateNotFound
	}

	prompt := fillTemplate(body, p.UserID)
	return s.run(ctx, log, p, prompt)
}

// GenerateWithPrompt is the raw-prompt variant: the caller supplies the
// prompt verbatim and no template is consulted.
func (s *GenerationService) GenerateWithPrompt(ctx context.Context, p GenerateParams, prompt string) (*Result, error) {
	log := s.log.With("request_id", uuid.NewString(), "user_id", p.UserID, "provider", p.Provider)

	if err := s.checkConsent(ctx, p.UserID); err != nil {
		return nil, err
	}
	return s.run(ctx, log, p, prompt)
}

func (s *GenerationService) checkConsent(ctx context.Context, userID int64) error {
	var optIn bool
	err := s.pool.Run(ctx, func() error {
		var err error
		optIn, err = s.users.AIOptIn(ctx, userID)
		return err
	})
	if err != nil {
		return err
	}
	if !optIn {
		return common.ErrorNoConsent
	}
	return nil
}

// run resolves secrets, calls the provider, and applies the safety gate. Both
// secrets must resolve before any network traffic happens, so a missing key
// never costs (or leaks the timing of) a failed round-trip.
func (s *GenerationService) run(ctx context.Context, log logging.Logger, p GenerateParams, prompt string) (*Result, error) {
	master, ok := s.resolver.ResolveMasterSecret(p.MasterLabel)
	if !ok {
		return nil, common.ErrorMasterSecretNotFound
	}

	apiKey, ok, err := s.resolver.ResolveProviderKey(ctx, p.UserID, p.Provider, master)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorProviderKeyNotFound
	}

	client, err := s.clientFor(p.Provider)
	if err != nil {
		return nil, err
	}

	content, err := client.Call(ctx, apiKey, prompt, provider.Options{Timeout: p.Timeout, Model: p.Model})
	if err != nil {
		log.Warn(ctx, "provider call failed", "error", err)
		return &Result{Success: false, Message: err.Error(), Code: CodeProviderError}, nil
	}

	if err := safety.PolicyCheck(content); err != nil {
		log.Info(ctx, "policy violation, nothing persisted")
		return &Result{Success: false, Message: err.Error(), Code: CodePolicyViolation}, nil
	}

	// store the redacted text, return the original: the caller already holds
	// the sensitive text transiently, durable storage must not
	redacted := safety.RedactPII(content)

	var model *string
	if p.Model != "" {
		model = &p.Model
	}

	var savedID int64
	err = s.pool.Run(ctx, func() error {
		var err error
		savedID, err = s.journal.Insert(ctx, p.UserID, p.Provider, model, redacted, nil)
		return err
	})
	if err != nil {
		log.Warn(ctx, "journal save failed", "error", err)
		return &Result{
			Success: true,
			Message: fmt.Sprintf("save_failed: %v", err),
			Content: content,
			Code:    CodeSaveError,
		}, nil
	}

	log.Info(ctx, "journal entry saved", "entry_id", savedID)
	return &Result{Success: true, Message: "saved: " + strconv.FormatInt(savedID, 10), Content: content}, nil
}

// fillTemplate substitutes the recognized markers literally; unknown markers
// pass through unchanged.
func fillTemplate(body string, userID int64) string {
	out := strings.ReplaceAll(body, "{{user_id}}", strconv.FormatInt(userID, 10))
	return strings.ReplaceAll(out, "{{prompt}}", journalInstruction)
}

// IsNotFound reports whether err is one of the absence-type failures a caller
// should present as "not found" rather than as a fault.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrorUserNotFound) ||
		errors.Is(err, common.ErrorTemplateNotFound) ||
		errors.Is(err, common.ErrorMasterSecretNotFound) ||
		errors.Is(err, common.ErrorProviderKeyNotFound)
}

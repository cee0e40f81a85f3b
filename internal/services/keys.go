package services

import (
	"context"

	"focusd/internal/logging"
	"focusd/internal/secrets"
)

// KeyService is the management surface over the secret resolver. Every
// operation returns a structured Result so the host shell can surface it
// without interpreting Go errors.
type KeyService struct {
	resolver *secrets.Resolver
	log      logging.Logger
}

func NewKeyService(resolver *secrets.Resolver, log logging.Logger) *KeyService {
	return &KeyService{resolver: resolver, log: log.With("component", "keys")}
}

// Set encrypts and stores a provider key (encrypted record authoritative,
// keyring mirror best-effort).
func (s *KeyService) Set(ctx context.Context, userID int64, providerName, apiKey, masterPassphrase string) *Result {
	if err := s.resolver.StoreProviderKey(ctx, userID, providerName, apiKey, masterPassphrase); err != nil {
		return &Result{Success: false, Message: err.Error(), Code: CodeKeyError}
	}
	return &Result{Success: true}
}

// Get resolves a provider key. Absence is a successful Result with empty
// Content; only genuine store faults report key_error.
func (s *KeyService) Get(ctx context.Context, userID int64, providerName, masterPassphrase string) *Result {
	apiKey, ok, err := s.resolver.ResolveProviderKey(ctx, userID, providerName, masterPassphrase)
	if err != nil {
		return &Result{Success: false, Message: err.Error(), Code: CodeKeyError}
	}
	if !ok {
		return &Result{Success: true}
	}
	return &Result{Success: true, Content: apiKey}
}

// Delete removes the encrypted record and best-effort deletes the mirror.
func (s *KeyService) Delete(ctx context.Context, userID int64, providerName string) *Result {
	if err := s.resolver.DeleteProviderKey(ctx, userID, providerName); err != nil {
		return &Result{Success: false, Message: err.Error(), Code: CodeKeyError}
	}
	return &Result{Success: true}
}

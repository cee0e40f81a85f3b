package secrets

import (
	"context"
	"fmt"
	"strconv"

	"focusd/internal/common"
	"focusd/internal/cryptox"
	"focusd/internal/dbx"
	"focusd/internal/keyringx"
	"focusd/internal/logging"
	"focusd/internal/store/apikeys"
)

// apiKeySalt is the fixed, non-secret salt used to derive the key that
// protects stored provider keys. It is deliberately not per-record: secrecy
// relies on the passphrase and the per-call nonce. Changing it invalidates
// every existing api_keys row.
var apiKeySalt = []byte("focusd_api_key_salt_v1")

// Resolver implements the layered secret lookup/write paths. The encrypted
// record in the database is the durable source of truth; the OS keyring is a
// latency shortcut that needs no passphrase.
type Resolver struct {
	keyring keyringx.Store
	cache   *MasterCache
	records apikeys.Repository
	pool    *dbx.Pool
	log     logging.Logger
}

func NewResolver(kr keyringx.Store, cache *MasterCache, records apikeys.Repository, pool *dbx.Pool, log logging.Logger) *Resolver {
	return &Resolver{
		keyring: kr,
		cache:   cache,
		records: records,
		pool:    pool,
		log:     log.With("component", "secrets"),
	}
}

func providerService(provider string) string {
	return common.ProviderKeyringPrefix + provider
}

func userAccount(userID int64) string {
	return common.ProviderKeyringAccountP + strconv.FormatInt(userID, 10)
}

// StoreInKeyring writes a master secret to the OS keyring. This is the
// explicit, user-invoked path, so a store fault is surfaced rather than
// swallowed.
func (r *Resolver) StoreInKeyring(label, secret string) error {
	if err := r.keyring.Set(common.MasterKeyringService, label, secret); err != nil {
		return fmt.Errorf("keyring write failed: %w", err)
	}
	return nil
}

// CacheTemporary puts a master secret into the TTL cache. Never fails.
func (r *Resolver) CacheTemporary(label, secret string) {
	r.cache.Put(label, secret)
}

// ClearCache drops a cached master secret. Never fails.
func (r *Resolver) ClearCache(label string) {
	r.cache.Clear(label)
}

// ResolveMasterSecret checks the live cache first, then the OS keyring. The
// master passphrase has no encrypted-record form — it is the key, not the
// payload — so there is nothing further to fall back to.
func (r *Resolver) ResolveMasterSecret(label string) (string, bool) {
	if secret, ok := r.cache.Get(label); ok {
		return secret, true
	}
	return r.keyring.Get(common.MasterKeyringService, label)
}

// StoreProviderKey encrypts apiKey under the passphrase-derived key and
// writes the encrypted record; that write is authoritative and its outcome is
// the return value. The plaintext is then mirrored into the OS keyring
// best-effort, with failure only logged.
func (r *Resolver) StoreProviderKey(ctx context.Context, userID int64, provider, apiKey, masterPassphrase string) error {
	key := cryptox.DeriveKey([]byte(masterPassphrase), apiKeySalt)
	ciphertext, err := cryptox.EncryptString(apiKey, key)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	err = r.pool.Run(ctx, func() error {
		return r.records.Upsert(ctx, userID, provider, ciphertext)
	})
	if err != nil {
		return err
	}

	if err := r.keyring.Set(providerService(provider), userAccount(userID), apiKey); err != nil {
		r.log.Warn(ctx, "keyring mirror write failed", "provider", provider, "user_id", userID, "error", err)
	}
	return nil
}

// ResolveProviderKey looks up the provider key: OS keyring first (no
// passphrase needed), then the encrypted record decrypted with the
// passphrase. Absence and decryption failure are both ok=false; only genuine
// store faults return an error.
func (r *Resolver) ResolveProviderKey(ctx context.Context, userID int64, provider, masterPassphrase string) (string, bool, error) {
	if apiKey, ok := r.keyring.Get(providerService(provider), userAccount(userID)); ok {
		return apiKey, true, nil
	}

	var ciphertext string
	var found bool
	err := r.pool.Run(ctx, func() error {
		var err error
		ciphertext, found, err = r.records.Get(ctx, userID, provider)
		return err
	})
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}

	key := cryptox.DeriveKey([]byte(masterPassphrase), apiKeySalt)
	apiKey, ok := cryptox.DecryptString(ciphertext, key)
	if !ok {
		// Wrong passphrase and corrupted record look identical here.
		return "", false, nil
	}
	return apiKey, true, nil
}

// DeleteProviderKey removes the encrypted record (authoritative) and
// best-effort deletes the keyring mirror; a mirror failure is only logged
// since the durable copy is already gone.
func (r *Resolver) DeleteProviderKey(ctx context.Context, userID int64, provider string) error {
	err := r.pool.Run(ctx, func() error {
		return r.records.Delete(ctx, userID, provider)
	})
	if err != nil {
		return err
	}

	if err := r.keyring.Delete(providerService(provider), userAccount(userID)); err != nil {
		r.log.Warn(ctx, "keyring mirror delete failed", "provider", provider, "user_id", userID, "error", err)
	}
	return nil
}

package common

import "time"

// Keyring namespaces. Master secrets live under a single fixed service name;
// provider keys get a per-provider service and a per-user account so one OS
// entry maps to exactly one (user, provider) pair.
const (
	MasterKeyringService    = "focusd_master"
	ProviderKeyringPrefix   = "focusd_provider_"
	ProviderKeyringAccountP = "user_"
)

// MasterCacheTTL bounds how long an unlocked master secret stays usable
// without re-entry.
const MasterCacheTTL = 5 * time.Minute

// DefaultProviderTimeout applies to generation flows when the caller does not
// override it. Smoke tests use something much shorter.
const DefaultProviderTimeout = 30 * time.Second

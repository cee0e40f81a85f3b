// Package common defines shared constants and sentinel errors used across
// the gateway layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Consent / user errors.
	ErrorNoConsent    = errors.New("user has not consented to AI operations")
	ErrorUserNotFound = errors.New("user not found")

	// Secret-resolution errors. Both cover genuine absence and decryption
	// failure; the two cases are deliberately indistinguishable to callers.
	ErrorMasterSecretNotFound = errors.New("master secret not found or unlocked")
	ErrorProviderKeyNotFound  = errors.New("api key not found for provider")

	// Template errors.
	ErrorTemplateNotFound = errors.New("template not found")

	// Provider errors.
	ErrorUnknownProvider = errors.New("unknown provider")
)

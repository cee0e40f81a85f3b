// Package safety gates every generated artifact before it is persisted or
// returned: a policy check that can reject outright, and a PII redaction pass
// that rewrites the text. Both are conservative placeholders, not a
// production moderation system, and are documented as such.
package safety

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	redactedEmail = "[REDACTED_EMAIL]"
	redactedPhone = "[REDACTED_PHONE]"
	redactedKey   = "[REDACTED_KEY]"
)

// Patterns are disjoint by construction; no replacement token matches a later
// pattern, so pass order does not matter.
var (
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe  = regexp.MustCompile(`(?m)(?:\+?\d[\d .-]{7,}\d)`)
	apiKeyRe = regexp.MustCompile(`(?i)\b(?:sk|api|token|key)[-_ ]?[A-Za-z0-9]{20,}\b`)
)

// RedactPII replaces email addresses, phone-number-shaped digit runs, and
// API-key-shaped tokens with fixed placeholders.
func RedactPII(input string) string {
	out := emailRe.ReplaceAllString(input, redactedEmail)
	out = phoneRe.ReplaceAllString(out, redactedPhone)
	out = apiKeyRe.ReplaceAllString(out, redactedKey)
	return out
}

// disallowedTerms is a deliberately small demo list; extend as policy grows.
var disallowedTerms = []string{"shit", "fuck", "bitch"}

// maxContentLen rejects excessively large artifacts outright.
const maxContentLen = 10000

// PolicyCheck returns nil when the text passes, or an error naming the
// violated rule. Matching is case-insensitive substring.
func PolicyCheck(input string) error {
	lower := strings.ToLower(input)
	for _, term := range disallowedTerms {
		if strings.Contains(lower, term) {
			return fmt.Errorf("policy_violation: found disallowed word: %s", term)
		}
	}
	if len(input) > maxContentLen {
		return fmt.Errorf("policy_violation: content too large")
	}
	return nil
}

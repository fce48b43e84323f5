// Package redact strips sensitive fragments from strings before they are
// logged. Error chains in this service can carry PostgreSQL connection
// strings, SQL text from the ledger adapter, and bearer tokens from the
// auth middleware; none of those belong in a log line.
package redact

import "regexp"

// Redaction placeholders.
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedJWT        = "[REDACTED_JWT]"
	RedactedSQL        = "[REDACTED_SQL]"
	RedactedHost       = "[REDACTED_HOST]"
	RedactedPath       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; credential patterns run before the broader
// host and path patterns so the more specific placeholder wins.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres(ql)?|mysql)://[^@\s]+@`), RedactedCredential},
	{regexp.MustCompile(`(?i)(password|secret|token)([=:\s]['"]?)[^'"&\s]{3,}`), RedactedCredential},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWT},
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|TRUNCATE|CREATE|ALTER|DROP)\s[\s\w,.*()='"$]+`), RedactedSQL},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), RedactedHost},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPath},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Package redact provides utilities for redacting sensitive information from strings
// before they are logged. Upstream failures can echo request URLs, headers and
// customer data back into error messages; this package strips API keys, bearer
// tokens, URL credentials, customer emails, hosts and file paths from them.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

// Precompiled regex patterns
var (
	// user:password@ segments of URLs
	urlCredentialRegex = regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/\s:@]+:[^/\s@]+@`)

	// Credentials and tokens
	bearerRegex = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/=]+`)
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// File and URL paths, applied after hosts so a URL collapses to host + path placeholders
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// patterns are applied in order
	patterns = []*regexp.Regexp{
		urlCredentialRegex, bearerRegex, apiKeyRegex, stackTraceRegex,
		emailRegex, hostPortRegex, unixPathRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		urlCredentialRegex: "${1}" + RedactedCredentialPlaceholder + "@",
		bearerRegex:        "Bearer " + RedactedKeyPlaceholder,
		apiKeyRegex:        RedactedKeyPlaceholder,
		stackTraceRegex:    "[STACK_TRACE_REDACTED]",
		emailRegex:         RedactedEmailPlaceholder,
		hostPortRegex:      RedactedHostPlaceholder,
		unixPathRegex:      RedactedPathPlaceholder,
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

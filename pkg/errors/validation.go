package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds any single path identifier sent upstream.
const maxIdentifierLength = 256

// ValidateIdentifier checks one identifying argument (host, owner, repo,
// user, platform, project name) before it is used to build a request.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only values
//   - No control characters (including null bytes)
//   - Maximum length of 256 characters
//
// Reserved characters such as "/" or "?" are allowed; the query builder
// percent-encodes them. The field name is only used in the message.
func ValidateIdentifier(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidArgument, "%s is required", field)
	}

	if len(value) > maxIdentifierLength {
		return New(ErrCodeInvalidArgument, "%s too long (max %d characters)", field, maxIdentifierLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "%s contains invalid control characters", field)
		}
	}

	return nil
}

// ValidateAPIKey checks a libraries.io API key at client construction.
func ValidateAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeConfiguration,
			"an API key is required; see https://libraries.io/account to get one")
	}
	if strings.ContainsFunc(key, unicode.IsSpace) {
		return New(ErrCodeConfiguration, "API key must not contain whitespace")
	}
	return nil
}

// ValidateURL validates a base URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeConfiguration, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeConfiguration, "URL must use http or https scheme")
	}

	return nil
}

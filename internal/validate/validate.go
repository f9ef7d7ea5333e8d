// Package validate checks analysis inputs before any network call is made.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ValidationError names the offending field so callers can surface it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// APIKey requires a non-blank credential.
func APIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &ValidationError{Field: "api_key", Message: "API key is required"}
	}
	return nil
}

// URL requires an absolute http or https URL.
func URL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return &ValidationError{Field: "url", Message: "not a valid URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https"}
	}
	if u.Host == "" {
		return &ValidationError{Field: "url", Message: "URL is missing a host"}
	}
	return nil
}

// Content bounds the text handed to the model. Short snippets carry too
// little signal to analyze; oversized ones blow the prompt budget.
func Content(text string, minChars, maxChars int) error {
	trimmed := strings.TrimSpace(text)
	// Character limits, not byte limits; news text is not always ASCII.
	length := utf8.RuneCountInString(trimmed)
	if length < minChars {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content too short, need at least %d characters", minChars),
		}
	}
	if length > maxChars {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content too long, limit is %d characters", maxChars),
		}
	}
	return nil
}

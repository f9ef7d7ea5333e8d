package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestAPIKey(t *testing.T) {
	if err := APIKey("sk-abc123"); err != nil {
		t.Errorf("valid key rejected: %v", err)
	}
	for _, key := range []string{"", "   ", "\t\n"} {
		err := APIKey(key)
		if err == nil {
			t.Errorf("blank key %q accepted", key)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "api_key" {
			t.Errorf("expected api_key ValidationError, got %v", err)
		}
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/article", false},
		{"http", "http://example.com", false},
		{"trailing space", "  https://example.com  ", false},
		{"no scheme", "example.com/article", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := URL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("URL(%q) err=%v, wantErr=%v", tt.url, err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != "url" {
					t.Errorf("expected url ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestContent(t *testing.T) {
	ok := strings.Repeat("x", 50)
	if err := Content(ok, 50, 5000); err != nil {
		t.Errorf("content at minimum length rejected: %v", err)
	}
	if err := Content(strings.Repeat("x", 49), 50, 5000); err == nil {
		t.Error("content below minimum accepted")
	}
	if err := Content(strings.Repeat("x", 5001), 50, 5000); err == nil {
		t.Error("content above maximum accepted")
	}

	// Limits count characters, not bytes: 50 two-byte runes satisfy the
	// minimum, and 5000 two-byte runes still fit under the maximum.
	if err := Content(strings.Repeat("ø", 50), 50, 5000); err != nil {
		t.Errorf("50 multibyte characters rejected: %v", err)
	}
	if err := Content(strings.Repeat("ø", 5000), 50, 5000); err != nil {
		t.Errorf("5000 multibyte characters rejected: %v", err)
	}
	if err := Content(strings.Repeat("ø", 5001), 50, 5000); err == nil {
		t.Error("5001 characters accepted")
	}

	// Surrounding whitespace does not count toward the minimum.
	padded := "   " + strings.Repeat("x", 49) + "   "
	err := Content(padded, 50, 5000)
	if err == nil {
		t.Error("padding should not satisfy the minimum length")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "content" {
		t.Errorf("expected content ValidationError, got %v", err)
	}
}

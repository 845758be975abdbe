// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics and compatibility with errors.Is()
// and errors.As() through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrMissingParameter
// ---------------------------------------------------------------------------

func TestErrMissingParameter_Messages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrMissingParameter
		expected string
	}{
		{name: "search", err: NewMissingSearchParameterError(), expected: "Query or IMDB ID is required"},
		{name: "download", err: NewMissingURLError(), expected: "Subtitle URL is required"},
		{name: "custom", err: &ErrMissingParameter{Message: "x"}, expected: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrMissingParameter_IsThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("search: %w", NewMissingSearchParameterError())

	if !errors.Is(wrapped, &ErrMissingParameter{}) {
		t.Error("Expected errors.Is to match ErrMissingParameter through wrapping")
	}
	if errors.Is(wrapped, &ErrSubtitleParse{}) {
		t.Error("Expected errors.Is not to match an unrelated type")
	}

	var target *ErrMissingParameter
	if !errors.As(wrapped, &target) {
		t.Fatal("Expected errors.As to extract ErrMissingParameter")
	}
	if target.Message != "Query or IMDB ID is required" {
		t.Errorf("Unexpected message %q", target.Message)
	}
}

// ---------------------------------------------------------------------------
// Provider errors
// ---------------------------------------------------------------------------

func TestErrProviderNotConfigured(t *testing.T) {
	t.Parallel()
	err := &ErrProviderNotConfigured{Provider: "opensubtitles", Reason: "api key missing"}
	if got, want := err.Error(), "opensubtitles provider not configured: api key missing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(fmt.Errorf("wrap: %w", err), &ErrProviderNotConfigured{}) {
		t.Error("Expected errors.Is to match ErrProviderNotConfigured")
	}
}

func TestErrProviderStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrProviderStatus
		expected string
	}{
		{
			name:     "with body",
			err:      &ErrProviderStatus{Provider: "subdb", StatusCode: 503, Body: "down"},
			expected: "subdb returned status 503: down",
		},
		{
			name:     "without body",
			err:      &ErrProviderStatus{Provider: "subdb", StatusCode: 429},
			expected: "subdb returned status 429",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Download errors
// ---------------------------------------------------------------------------

func TestErrSubtitleResourceNotFound(t *testing.T) {
	t.Parallel()
	err := &ErrSubtitleResourceNotFound{URL: "https://example.com/sub.srt"}
	if got, want := err.Error(), "subtitle resource not found at URL: https://example.com/sub.srt"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Is(err, &ErrDownloadFailed{}) {
		t.Error("ErrSubtitleResourceNotFound must not match ErrDownloadFailed")
	}
}

func TestErrDownloadFailed(t *testing.T) {
	t.Parallel()
	err := &ErrDownloadFailed{URL: "https://example.com/a", StatusCode: 500}
	if got, want := err.Error(), "failed to download subtitle from https://example.com/a: status 500"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(fmt.Errorf("outer: %w", err), &ErrDownloadFailed{}) {
		t.Error("Expected errors.Is to match ErrDownloadFailed")
	}
}

func TestErrSubtitleNotFoundInArchive(t *testing.T) {
	t.Parallel()
	err := &ErrSubtitleNotFoundInArchive{Format: "zip", FileCount: 3}
	if got, want := err.Error(), "no subtitle file found in zip archive (searched 3 files)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrSubtitleParse_Unwrap(t *testing.T) {
	t.Parallel()
	err := &ErrSubtitleParse{Format: "srt", Err: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("Expected ErrSubtitleParse to unwrap to the parser error")
	}
	if !errors.Is(fmt.Errorf("download: %w", err), &ErrSubtitleParse{}) {
		t.Error("Expected errors.Is to match ErrSubtitleParse")
	}
	if got, want := err.Error(), "failed to parse srt subtitle: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

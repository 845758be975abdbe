package apperrors

import "fmt"

// ErrMissingParameter is returned when a request lacks a required identifying parameter.
type ErrMissingParameter struct {
	Message string
}

// Error implements the error interface.
func (e *ErrMissingParameter) Error() string {
	return e.Message
}

// Is allows for error checking with errors.Is().
func (e *ErrMissingParameter) Is(target error) bool {
	_, ok := target.(*ErrMissingParameter)
	return ok
}

// NewMissingSearchParameterError is returned when neither a query nor an IMDB id was given.
func NewMissingSearchParameterError() *ErrMissingParameter {
	return &ErrMissingParameter{Message: "Query or IMDB ID is required"}
}

// NewMissingURLError is returned when a download request has no URL.
func NewMissingURLError() *ErrMissingParameter {
	return &ErrMissingParameter{Message: "Subtitle URL is required"}
}

// ErrProviderNotConfigured is returned by a provider that lacks credentials or an endpoint.
type ErrProviderNotConfigured struct {
	Provider string
	Reason   string
}

// Error implements the error interface.
func (e *ErrProviderNotConfigured) Error() string {
	return fmt.Sprintf("%s provider not configured: %s", e.Provider, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrProviderNotConfigured) Is(target error) bool {
	_, ok := target.(*ErrProviderNotConfigured)
	return ok
}

// ErrProviderStatus is returned when a provider answers with a non-success HTTP status.
type ErrProviderStatus struct {
	Provider   string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ErrProviderStatus) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrProviderStatus) Is(target error) bool {
	_, ok := target.(*ErrProviderStatus)
	return ok
}

// ErrSubtitleResourceNotFound is returned when the subtitle download URL returns HTTP 404.
type ErrSubtitleResourceNotFound struct {
	URL string
}

// Error implements the error interface.
func (e *ErrSubtitleResourceNotFound) Error() string {
	return fmt.Sprintf("subtitle resource not found at URL: %s", e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrSubtitleResourceNotFound) Is(target error) bool {
	_, ok := target.(*ErrSubtitleResourceNotFound)
	return ok
}

// ErrDownloadFailed is returned when the subtitle download URL answers with any other non-2xx status.
type ErrDownloadFailed struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrDownloadFailed) Error() string {
	return fmt.Sprintf("failed to download subtitle from %s: status %d", e.URL, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrDownloadFailed) Is(target error) bool {
	_, ok := target.(*ErrDownloadFailed)
	return ok
}

// ErrSubtitleNotFoundInArchive is returned when an archive holds no subtitle file.
type ErrSubtitleNotFoundInArchive struct {
	Format    string
	FileCount int
}

// Error implements the error interface.
func (e *ErrSubtitleNotFoundInArchive) Error() string {
	return fmt.Sprintf("no subtitle file found in %s archive (searched %d files)", e.Format, e.FileCount)
}

// Is allows for error checking with errors.Is().
func (e *ErrSubtitleNotFoundInArchive) Is(target error) bool {
	_, ok := target.(*ErrSubtitleNotFoundInArchive)
	return ok
}

// ErrSubtitleParse is returned when downloaded content cannot be parsed into cues.
type ErrSubtitleParse struct {
	Format string
	Err    error
}

// Error implements the error interface.
func (e *ErrSubtitleParse) Error() string {
	return fmt.Sprintf("failed to parse %s subtitle: %v", e.Format, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ErrSubtitleParse) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrSubtitleParse) Is(target error) bool {
	_, ok := target.(*ErrSubtitleParse)
	return ok
}

// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrDataBlockMissing indicates the embedded page data block
	// (__NEXT_DATA__) is absent from the fetched HTML.
	ErrDataBlockMissing = errors.New("embedded data block not found")
)

// FetchError represents an HTTP fetch failure with context.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error (url=%s): %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new fetch error.
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// ExtractionError represents a failure to recover structured program data
// from a fetched page. A record is never partially built out of one.
type ExtractionError struct {
	Slug string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error (slug=%s): %v", e.Slug, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new extraction error.
func NewExtractionError(slug string, err error) *ExtractionError {
	return &ExtractionError{Slug: slug, Err: err}
}

// DocumentOpenError represents a study plan document that cannot be
// opened at all (corrupt or unsupported format). Per-page extraction
// misses are not errors.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("document open error (path=%s): %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error {
	return e.Err
}

// NewDocumentOpenError creates a new document open error.
func NewDocumentOpenError(path string, err error) *DocumentOpenError {
	return &DocumentOpenError{Path: path, Err: err}
}

// PersistenceError represents a storage write or read failure.
type PersistenceError struct {
	Op   string // Operation being performed (e.g., "save_program")
	Slug string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("persistence error (op=%s, slug=%s): %v", e.Op, e.Slug, e.Err)
	}
	return fmt.Sprintf("persistence error (op=%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new persistence error.
func NewPersistenceError(op, slug string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Slug: slug, Err: err}
}

// ModelInvocationError represents a language model call failure.
// Rate limits, network failures and malformed responses are treated
// uniformly: the active conversation flow terminates.
type ModelInvocationError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation error (provider=%s, model=%s): %v", e.Provider, e.Model, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// NewModelInvocationError creates a new model invocation error.
func NewModelInvocationError(provider, model string, err error) *ModelInvocationError {
	return &ModelInvocationError{Provider: provider, Model: model, Err: err}
}

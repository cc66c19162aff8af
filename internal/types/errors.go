package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNoPagination   = errors.New("pagination control not found")
	ErrAttemptsSpent  = errors.New("all scrape attempts exhausted")
	ErrBadCredentials = errors.New("invalid service account credentials")
)

// NavError wraps errors that occur while navigating to a page.
type NavError struct {
	URL string
	Err error
}

func (e *NavError) Error() string {
	return fmt.Sprintf("navigation error for %s: %v", e.URL, e.Err)
}

func (e *NavError) Unwrap() error { return e.Err }

// ExtractError wraps errors that occur while extracting a profile.
type ExtractError struct {
	URL string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for %s: %v", e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// SinkError wraps errors that occur during export.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink error (%s): %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

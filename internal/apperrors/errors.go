package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for logging and metrics.
type Kind string

const (
	KindUnknown    Kind = "unknown"
	KindTransport  Kind = "transport"
	KindParse      Kind = "parse"
	KindFilesystem Kind = "filesystem"
)

// ErrTransport represents a network or HTTP failure while fetching a URL.
// StatusCode is zero when no response was received.
type ErrTransport struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ErrTransport) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status code %d", e.Op, e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.URL)
}

// Unwrap returns the underlying cause.
func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrTransport) Is(target error) bool {
	_, ok := target.(*ErrTransport)
	return ok
}

// NewTransportError wraps a request failure.
func NewTransportError(op, url string, err error) *ErrTransport {
	return &ErrTransport{Op: op, URL: url, Err: err}
}

// NewStatusError reports a non-2xx response.
func NewStatusError(op, url string, statusCode int) *ErrTransport {
	return &ErrTransport{Op: op, URL: url, StatusCode: statusCode}
}

// ErrParse represents a document or URL that could not be interpreted.
type ErrParse struct {
	What string
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *ErrParse) Error() string {
	msg := "failed to parse " + e.What
	if e.URL != "" {
		msg += " from " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ErrParse) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrParse) Is(target error) bool {
	_, ok := target.(*ErrParse)
	return ok
}

// NewParseError creates a new ErrParse.
func NewParseError(what, url string, err error) *ErrParse {
	return &ErrParse{What: what, URL: url, Err: err}
}

// ErrFilesystem represents a failure creating directories or writing files.
type ErrFilesystem struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ErrFilesystem) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ErrFilesystem) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrFilesystem) Is(target error) bool {
	_, ok := target.(*ErrFilesystem)
	return ok
}

// NewFilesystemError creates a new ErrFilesystem.
func NewFilesystemError(op, path string, err error) *ErrFilesystem {
	return &ErrFilesystem{Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first typed error found in err's chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, &ErrTransport{}):
		return KindTransport
	case errors.Is(err, &ErrParse{}):
		return KindParse
	case errors.Is(err, &ErrFilesystem{}):
		return KindFilesystem
	default:
		return KindUnknown
	}
}

package rekog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAnImage is returned when the fetched bytes are not an image we can read.
	// It is an expected outcome for most links and is only worth a debug line.
	ErrNotAnImage = errors.New("not an image")

	// ErrHistogram is returned when a histogram cannot be taken from an image.
	ErrHistogram = errors.New("histogram extraction failed")
)

type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota
	FetchTimeout
	FetchHTTPStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchHTTPStatus:
		return "http_status"
	default:
		return "network"
	}
}

// FetchError describes why a URL could not be downloaded.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("HTTPError %d while opening '%s': %s", e.StatusCode, e.URL, e.Reason)
	case FetchTimeout:
		return fmt.Sprintf("timeout while opening '%s': %s", e.URL, e.Reason)
	default:
		return fmt.Sprintf("URLError while opening '%s': %s", e.URL, e.Reason)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError is any decode failure other than ErrNotAnImage.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode %s image: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReferenceLoadError reports a reference entry that could not be loaded.
type ReferenceLoadError struct {
	Name string
	Path string
	Err  error
}

func (e *ReferenceLoadError) Error() string {
	return fmt.Sprintf("load reference %q from %s: %v", e.Name, e.Path, e.Err)
}

func (e *ReferenceLoadError) Unwrap() error {
	return e.Err
}

package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnsupportedKind is returned when a source has no way to serve a collection.
	ErrUnsupportedKind = errors.New("collection not supported by source")
	// ErrProviderUnavailable is returned by decorators that have nothing to delegate to.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ErrorKind classifies why a fetch failed.
type ErrorKind string

const (
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindHTTPStatus ErrorKind = "http_status"
	ErrorKindDecode     ErrorKind = "decode"
)

// FetchError is the single failure type surfaced by sources. Consumers only
// ever show Error(); the remaining fields feed logs and metrics.
type FetchError struct {
	Kind       ErrorKind
	Source     string
	Collection Kind
	Status     int
	RetryAfter time.Duration
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" {
		switch e.Kind {
		case ErrorKindNetwork:
			msg = "upstream unreachable"
		case ErrorKindHTTPStatus:
			msg = "unexpected upstream status"
		case ErrorKindDecode:
			msg = "malformed upstream response"
		default:
			msg = "fetch failed"
		}
	}
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.Status)
	}
	if e.Collection != "" {
		msg = fmt.Sprintf("%s: %s", e.Collection, msg)
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewNetworkError reports a transport failure, including cancellation and timeouts.
func NewNetworkError(source string, kind Kind, err error) *FetchError {
	msg := "upstream unreachable"
	if err != nil {
		msg = err.Error()
	}
	return &FetchError{Kind: ErrorKindNetwork, Source: source, Collection: kind, Message: msg, Err: err}
}

// NewStatusError reports a non-success HTTP response.
func NewStatusError(source string, kind Kind, status int, body string) *FetchError {
	msg := "unexpected upstream status"
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	return &FetchError{Kind: ErrorKindHTTPStatus, Source: source, Collection: kind, Status: status, Message: msg}
}

// NewDecodeError reports a body that could not be interpreted.
func NewDecodeError(source string, kind Kind, err error) *FetchError {
	msg := "malformed upstream response"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &FetchError{Kind: ErrorKindDecode, Source: source, Collection: kind, Message: msg, Err: err}
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ErrorKindOf labels err for metrics; errors that are not FetchErrors report "other".
func ErrorKindOf(err error) string {
	if err == nil {
		return ""
	}
	if fe, ok := AsFetchError(err); ok {
		return string(fe.Kind)
	}
	if errors.Is(err, ErrUnsupportedKind) {
		return "unsupported"
	}
	return "other"
}

package models

import (
	"fmt"
	"time"
)

// FetchErrorKind classifies a failed pipeline run
type FetchErrorKind string

const (
	// KindTransport covers connection failures, timeouts and cancellation
	KindTransport FetchErrorKind = "transport"
	// KindStatus is a non-success HTTP status
	KindStatus FetchErrorKind = "status"
	// KindDecode is a body that could not be decoded or normalized
	KindDecode FetchErrorKind = "decode"
	// KindEmpty is a successful fetch that produced zero rows
	KindEmpty FetchErrorKind = "empty"
)

// FetchError is the error side of a pipeline result
type FetchError struct {
	Kind       FetchErrorKind `json:"kind"`
	Message    string         `json:"message"`
	StatusCode int            `json:"status_code,omitempty"`
	Cause      error          `json:"-"`
}

// NewFetchError creates a FetchError of the given kind
func NewFetchError(kind FetchErrorKind, message string, cause error) *FetchError {
	return &FetchError{Kind: kind, Message: message, Cause: cause}
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// IsEmpty reports whether the fetch succeeded but returned nothing
func (e *FetchError) IsEmpty() bool {
	return e != nil && e.Kind == KindEmpty
}

// PriceResult is the outcome of one crypto pipeline run
type PriceResult struct {
	ID        string        `json:"id"`
	Query     CryptoQuery   `json:"query"`
	Table     PriceTable    `json:"table"`
	Err       *FetchError   `json:"error,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// OK reports whether the run produced rows
func (r PriceResult) OK() bool { return r.Err == nil }

// QuakeResult is the outcome of one seismic pipeline run
type QuakeResult struct {
	ID        string        `json:"id"`
	Query     SeismicQuery  `json:"query"`
	Table     QuakeTable    `json:"table"`
	Err       *FetchError   `json:"error,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// OK reports whether the run produced rows
func (r QuakeResult) OK() bool { return r.Err == nil }

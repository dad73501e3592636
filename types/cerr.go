// Package types
package types

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("resource not found")
var ErrInvalidParam = errors.New("invalid param")
var ErrInvalidRoute = errors.New("invalid route")
var ErrRateUnavailable = errors.New("rate unavailable")

// FetchKind classifies why a market data request failed.
type FetchKind int

const (
	FetchNetwork FetchKind = iota
	FetchHTTP
	FetchParse
	FetchNotFound
)

func (k FetchKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchHTTP:
		return "http"
	case FetchParse:
		return "parse"
	case FetchNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type FetchError struct {
	Kind       FetchKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTP:
		return fmt.Sprintf("fetch %s: http status %d", e.Endpoint, e.StatusCode)
	case FetchNotFound:
		return fmt.Sprintf("fetch %s: not found", e.Endpoint)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s error: %s", e.Endpoint, e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: %s error", e.Endpoint, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match not-found fetches.
func (e *FetchError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == FetchNotFound
}

func IsFetchKind(err error, kind FetchKind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

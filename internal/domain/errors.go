package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRateNotFound = errors.New("rate not found")
	ErrNoKnownCodes = errors.New("no known currency codes")
)

type FailureKind int

const (
	// TransportFailure means no usable response: network error, timeout or non-2xx status.
	TransportFailure FailureKind = iota + 1
	// EnvelopeParseFailure means the top-level JSON shape was not the expected one.
	EnvelopeParseFailure
	// ElementParseFailure means a single record inside a batch was malformed.
	ElementParseFailure
	// ConversionMiss means a pivot rate needed for conversion was unavailable.
	ConversionMiss
)

func (k FailureKind) String() string {
	switch k {
	case TransportFailure:
		return "transport"
	case EnvelopeParseFailure:
		return "envelope_parse"
	case ElementParseFailure:
		return "element_parse"
	case ConversionMiss:
		return "conversion_miss"
	default:
		return "unknown"
	}
}

// FetchError is a classified failure of one fetch step. Fetchers return it
// instead of panicking so that callers only ever see fewer rates.
type FetchError struct {
	Kind   FailureKind
	Source string
	Err    error
}

func NewFetchError(kind FailureKind, source string, err error) *FetchError {
	return &FetchError{Kind: kind, Source: source, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, or 0 when err is not a FetchError.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

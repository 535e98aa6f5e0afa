// Package apierr defines the shared error taxonomy for provider API calls.
//
// Both the transcription and the chat-completion client map HTTP failures to
// an [*Error] carrying a [Kind], so that callers can decide on retry and
// fallback behaviour with a single switch instead of string matching.
// The classification rules:
//
//	401          → KindInvalidKey  (fatal, never retried)
//	429          → KindRateLimited (retryable)
//	>= 500       → KindServer      (retryable)
//	transport    → KindNetwork     (retryable)
//	bad payload  → KindMalformed   (not retried; cleanup falls back)
//	anything else → KindOther, carrying the provider's message when present.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies a provider API failure.
type Kind int

const (
	// KindOther is a generic failure that fits no other kind.
	KindOther Kind = iota

	// KindInvalidKey indicates an authentication failure (HTTP 401).
	// Never retried; aborts the pipeline.
	KindInvalidKey

	// KindRateLimited indicates the provider rejected the request due to
	// rate limiting (HTTP 429).
	KindRateLimited

	// KindServer indicates a provider-side failure (HTTP 5xx).
	KindServer

	// KindNetwork indicates the request never produced an HTTP response
	// (DNS, connect, TLS, or read failure).
	KindNetwork

	// KindMalformed indicates the response arrived but could not be
	// interpreted (unexpected JSON shape, missing fields).
	KindMalformed
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidKey:
		return "invalid_key"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	default:
		return "other"
	}
}

// Error is a classified provider API failure.
type Error struct {
	// Kind is the failure classification.
	Kind Kind

	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Message is a human-readable description. For HTTP errors this is the
	// provider's error.message field when present, otherwise a generic
	// status description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("provider error (status %d)", e.Status)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FromStatus maps an HTTP status code to an [*Error]. providerMsg is the
// message extracted from the provider's error body and may be empty.
func FromStatus(status int, providerMsg string) *Error {
	e := &Error{Status: status, Message: providerMsg}
	switch {
	case status == 401:
		e.Kind = KindInvalidKey
		if e.Message == "" {
			e.Message = "invalid API key"
		}
	case status == 429:
		e.Kind = KindRateLimited
		if e.Message == "" {
			e.Message = "rate limit reached (too many requests)"
		}
	case status >= 500:
		e.Kind = KindServer
		if e.Message == "" {
			e.Message = fmt.Sprintf("provider server error (status %d)", status)
		}
	default:
		e.Kind = KindOther
		if e.Message == "" {
			e.Message = fmt.Sprintf("unexpected provider response (status %d)", status)
		}
	}
	return e
}

// Network wraps a transport-level error (no HTTP response received).
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "network error: " + err.Error(), Err: err}
}

// Malformed wraps a response-decoding error.
func Malformed(err error) *Error {
	return &Error{Kind: KindMalformed, Message: "malformed provider response: " + err.Error(), Err: err}
}

// KindOf extracts the [Kind] from err. Errors that are not (or do not wrap)
// an [*Error] report [KindOther].
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// Retryable reports whether err is worth retrying. Authentication failures
// are the only definitive no: a bad key stays bad, every other failure mode
// may be transient.
func Retryable(err error) bool {
	return KindOf(err) != KindInvalidKey
}

package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure. The split mirrors the three outcomes a
// screen has to distinguish: no usable response at all, a response the
// backend itself marked as failed, and a response whose body did not match
// the contract. An empty result is none of these.
type Kind int

const (
	// KindTransport is a network-level failure: no response was received.
	KindTransport Kind = iota + 1

	// KindBackend is an application-level failure: the backend answered,
	// but the transport code or the body-level status field reports
	// something other than success.
	KindBackend

	// KindDecode means the response body did not match the expected shape.
	// Malformed payloads are stopped here instead of propagating as
	// zero-valued data.
	KindDecode
)

// Error is the typed failure returned by every gateway call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("gateway transport failure: %v", e.Err)
	case KindDecode:
		return fmt.Sprintf("gateway response malformed: %v", e.Err)
	default:
		if e.Message != "" {
			return fmt.Sprintf("backend rejected request (status %d): %s", e.Status, e.Message)
		}
		return fmt.Sprintf("backend rejected request (status %d)", e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reason extracts the backend-provided message from err, falling back to the
// given generic message. This is what the screens surface inline.
func Reason(err error, fallback string) string {
	var gwErr *Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return fallback
}

// IsBackend reports whether err is an application-level rejection, as
// opposed to a transport or decoding failure.
func IsBackend(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindBackend
}

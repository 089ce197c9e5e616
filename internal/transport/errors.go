package transport

import (
	"errors"
	"fmt"
)

// Kind classifies a transport failure so callers can decide how to message
// the user. Every kind is recoverable by explicit user action.
type Kind int

const (
	// KindUnreachable covers connection refusals, DNS failures and other
	// errors raised before an HTTP status was received.
	KindUnreachable Kind = iota
	// KindTimeout is reported separately from KindUnreachable so the UI can
	// distinguish "backend down" from "backend slow".
	KindTimeout
	// KindStatus is a non-2xx HTTP response.
	KindStatus
	// KindMalformed is a 2xx response whose body could not be decoded.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// errMissingNextIndex flags a non-complete respond payload without a
// question_index, which the controller cannot act on.
var errMissingNextIndex = errors.New("respond payload missing question_index")

// Error is the typed failure surfaced across the collaborator boundary.
type Error struct {
	Kind   Kind
	Op     string // e.g. "session.init"
	Status int    // set when Kind == KindStatus
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the transport kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

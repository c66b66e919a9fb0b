// Package apierr defines the error classes surfaced by the API client.
// Callers receive a single descriptive error per failed operation and can
// distinguish the classes with errors.Is / errors.As.
package apierr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported marks operations the legacy backend cannot perform.
	// Adapters wrap it with their version name, so the message reads
	// e.g. "SyspassV2 does not support this".
	ErrUnsupported = errors.New("does not support this")

	// ErrIDNotAssigned reports the invariant violation where a create or
	// edit round-trip returned without a server-assigned identifier.
	ErrIDNotAssigned = errors.New("server did not assign an entity id")
)

// TransportError covers everything that went wrong before a well-formed
// JSON-RPC response was obtained: network failures, non-success HTTP
// statuses, and undecodable bodies.
type TransportError struct {
	// Status is the HTTP status code, 0 when the failure happened before
	// or outside the HTTP exchange.
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("server responded with code %d", e.Status)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a well-formed JSON-RPC error object returned by the
// server, distinct from transport failures.
type ApplicationError struct {
	Code    int
	Message string
}

func (e *ApplicationError) Error() string { return e.Message }

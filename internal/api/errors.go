package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed marks a response whose body is missing required fields
	// or does not decode. Callers treat it as absent data.
	ErrMalformed = errors.New("malformed response")
	// ErrRejected marks a completion the server answered with ok=false.
	ErrRejected = errors.New("completion rejected")
)

// TransportError is a request that produced no HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-success HTTP response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, body)
}

// IsUnavailable reports whether err means the backend could not give an
// authoritative answer (transport failure, error status, or bad body).
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	var se *StatusError
	return errors.As(err, &te) || errors.As(err, &se) || errors.Is(err, ErrMalformed) || errors.Is(err, ErrRejected)
}

func malformed(op, detail string) error {
	return fmt.Errorf("%s: %w: %s", op, ErrMalformed, detail)
}

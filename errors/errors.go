// MIT License
//
// Copyright (c) 2026 Stagehand Engine Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidActorID is returned when an actor identifier contains invalid
	// characters. A valid identifier must consist of only word characters
	// (i.e. [a-zA-Z0-9] plus non-leading '-' or '_').
	ErrInvalidActorID = errors.New("invalid actor identifier, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrNotFound is returned when a requested actor or resource key is absent.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on a duplicate registration.
	ErrAlreadyExists = errors.New("already exists")

	// ErrLoadFailure is returned when a resource load fails, including when
	// every key of a fallback chain has been exhausted.
	ErrLoadFailure = errors.New("load failed")

	// ErrValidationFailure is returned when an actor or appearance
	// configuration is structurally invalid.
	ErrValidationFailure = errors.New("validation failed")

	// ErrCancelled indicates an intentionally cancelled operation. It is a
	// normal outcome of a superseded operation, never a failure.
	ErrCancelled = errors.New("operation cancelled")

	// ErrInvalidTransition is returned when a lifecycle or visibility state
	// transition violates the state machine rules. Callers performing
	// optimistic operations should treat it as a no-op rather than a fault.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrActorDestroyed is returned when an operation targets an actor whose
	// lifecycle has already reached its terminal state.
	ErrActorDestroyed = errors.New("actor is destroyed")

	// ErrStageNotStarted is returned when the stage is used before Start.
	ErrStageNotStarted = errors.New("stage is not started")

	// ErrStageAlreadyStarted is returned when starting a running stage.
	ErrStageAlreadyStarted = errors.New("stage has already started")

	// ErrNotABackground is returned when a background-only operation targets
	// an actor of a different kind.
	ErrNotABackground = errors.New("actor is not a background")
)

// NewErrInvalidActorID formats an ErrInvalidActorID with the offending id.
func NewErrInvalidActorID(id string) error {
	return fmt.Errorf("actor=(%s) %w", id, ErrInvalidActorID)
}

// NewErrActorNotFound formats an ErrNotFound with the given actor id.
func NewErrActorNotFound(id string) error {
	return fmt.Errorf("actor=(%s) %w", id, ErrNotFound)
}

// NewErrResourceNotFound formats an ErrNotFound with the given resource key.
func NewErrResourceNotFound(key string) error {
	return fmt.Errorf("resource=(%s) %w", key, ErrNotFound)
}

// NewErrActorAlreadyExists formats an ErrAlreadyExists for the given actor id.
func NewErrActorAlreadyExists(id string) error {
	return fmt.Errorf("actor=(%s) %w", id, ErrAlreadyExists)
}

// NewErrLoadFailure wraps a cause with ErrLoadFailure for the given key.
func NewErrLoadFailure(key string, cause error) error {
	return fmt.Errorf("resource=(%s) %w: %w", key, ErrLoadFailure, cause)
}

// NewErrValidationFailure wraps a cause with ErrValidationFailure.
func NewErrValidationFailure(cause error) error {
	return errors.Join(ErrValidationFailure, cause)
}

// NewErrCancelled wraps a cause with ErrCancelled so that both
// errors.Is(err, ErrCancelled) and errors.Is(err, cause) hold.
func NewErrCancelled(cause error) error {
	return errors.Join(ErrCancelled, cause)
}

// NewErrInvalidTransition formats an ErrInvalidTransition with the offending
// source and target state names.
func NewErrInvalidTransition(from, to string) error {
	return fmt.Errorf("(%s -> %s) %w", from, to, ErrInvalidTransition)
}

// IsCancellation reports whether err represents an intentional cancellation
// rather than a true failure. Cancellations are excluded from failure
// statistics and health reporting.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// FallbackError is returned when every key of a fallback chain failed to
// load. It aggregates the per-key causes in attempt order and unwraps to
// ErrLoadFailure so that errors.Is classification keeps working.
type FallbackError struct {
	keys   []string
	causes []error
}

// enforce compilation error
var _ error = (*FallbackError)(nil)

// NewFallbackError creates an instance of FallbackError. keys and causes are
// parallel slices in attempt order.
func NewFallbackError(keys []string, causes []error) *FallbackError {
	return &FallbackError{keys: keys, causes: causes}
}

// Keys returns the attempted resource keys in order.
func (e *FallbackError) Keys() []string {
	return e.keys
}

// Error implements the standard error interface
func (e *FallbackError) Error() string {
	var sb strings.Builder
	sb.WriteString("fallback chain exhausted: ")
	for i, key := range e.keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %v", key, e.causes[i])
	}
	return sb.String()
}

// Unwrap exposes ErrLoadFailure plus every per-key cause.
func (e *FallbackError) Unwrap() []error {
	out := make([]error, 0, len(e.causes)+1)
	out = append(out, ErrLoadFailure)
	out = append(out, e.causes...)
	return out
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount is returned for malformed or negative numeric input
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNotReady is returned when a write is requested before the signer,
	// client, amount, pool or token have been resolved
	ErrNotReady = errors.New("cannot submit yet")

	// ErrWriteInFlight is returned when a write is requested while another
	// write from the same instance is still pending
	ErrWriteInFlight = errors.New("a transaction is already in flight")

	// ErrProposalNotFound is returned when the proposal id is empty or the
	// governance client has no record of it
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrWrongDao is returned when a proposal belongs to another organization
	ErrWrongDao = errors.New("that proposal does not exist in this DAO")

	// ErrVerificationExpired is returned when a pending verification is past
	// its submission window
	ErrVerificationExpired = errors.New("verification expired")
)

// ExternalReadError wraps a failure raised by a chain or governance read.
type ExternalReadError struct {
	Op  string
	Err error
}

func (e *ExternalReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalReadError) Unwrap() error { return e.Err }

// ExternalWriteError wraps a failure raised while submitting or waiting for
// a transaction.
type ExternalWriteError struct {
	Op  string
	Err error
}

func (e *ExternalWriteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ExternalWriteError) Unwrap() error { return e.Err }

// ReadFailure wraps err as an ExternalReadError unless it is nil or already
// carries a domain meaning.
func ReadFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var readErr *ExternalReadError
	if errors.As(err, &readErr) || errors.Is(err, ErrProposalNotFound) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &ExternalReadError{Op: op, Err: err}
}

// WriteFailure wraps err as an ExternalWriteError.
func WriteFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var writeErr *ExternalWriteError
	if errors.As(err, &writeErr) {
		return err
	}
	return &ExternalWriteError{Op: op, Err: err}
}

// Package errors provides the error classification used across ringbuf.
//
// # Overview
//
// Errors fall into three classes: Transient (temporary, retryable), Invalid
// (bad input or configuration, do not retry) and Fatal (unrecoverable).
// The classes work with errors.Is, errors.As and wrapping chains.
//
// # Error Wrapping Pattern
//
// All wrapping follows the format:
//
//	"component.method: action failed: <cause>"
//
// For example:
//
//	return errors.WrapInvalid(errors.ErrInvalidCapacity, "RingBuffer", "New",
//		fmt.Sprintf("validate capacity %d", capacity))
//
// produces
//
//	RingBuffer.New: validate capacity 0 failed: capacity must be positive
//
// # What Is Not an Error
//
// A ring buffer read on an empty buffer and an insert into a full buffer are
// ordinary outcomes, reported through (value, ok) results. Only construction
// with a non-positive capacity fails, with ErrInvalidCapacity.
//
// # Checking Errors
//
//	rb, err := ringbuf.New[int](n)
//	if errors.Is(err, errors.ErrInvalidCapacity) {
//		// reject the configuration
//	}
//
//	switch errors.Classify(err) {
//	case errors.ErrorInvalid:
//		// report to the caller
//	case errors.ErrorFatal:
//		// stop
//	}
package errors

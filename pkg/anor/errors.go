// Package anor implements the Anor Storage Engine: an embeddable,
// process-local, thread-safe key to object store with on-disk durability
// and cross-process instance exclusion.
package anor

import "fmt"

// ErrorCode categorizes a StoreError.
type ErrorCode int

const (
	// ErrInstanceLockUnavailable indicates the advisory file lock on the
	// data directory could not be acquired within the configured timeout.
	ErrInstanceLockUnavailable ErrorCode = iota

	// ErrIO indicates a filesystem read/write/create/remove failure.
	ErrIO

	// ErrFraming indicates a malformed frame header: wrong declared
	// length, or an unknown packet/codec tag. Load also reports a
	// manifest key that does not match the key stored in its blob with
	// this code.
	ErrFraming

	// ErrCodec indicates an encode or decode failure in the active codec.
	ErrCodec

	// ErrUnsupportedCodec indicates the codec tag is registered but not
	// implemented (tags 2-5, reserved).
	ErrUnsupportedCodec

	// ErrPoisoned indicates an internal invariant was violated by
	// concurrent misuse of the engine. Treated as fatal. No operation in
	// this package returns it; a repeated GlobalLock.Unlock is a no-op.
	ErrPoisoned

	// ErrConfigMissing indicates the required storage config section is
	// absent.
	ErrConfigMissing

	// ErrKeyNotFound indicates a lookup found no item for the given key.
	ErrKeyNotFound
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInstanceLockUnavailable:
		return "InstanceLockUnavailable"
	case ErrIO:
		return "IoError"
	case ErrFraming:
		return "FramingError"
	case ErrCodec:
		return "CodecError"
	case ErrUnsupportedCodec:
		return "UnsupportedCodec"
	case ErrPoisoned:
		return "PoisonedLock"
	case ErrConfigMissing:
		return "ConfigMissing"
	case ErrKeyNotFound:
		return "KeyNotFound"
	default:
		return "Unknown"
	}
}

// StoreError represents a domain error raised by the storage engine.
//
// These describe structural failures of the engine itself (a malformed
// frame, an unavailable instance lock) as opposed to ordinary "not found"
// results, which routine accessors surface as a boolean/ok return instead.
type StoreError struct {
	// Code is the error category.
	Code ErrorCode

	// Message is a human-readable error description.
	Message string

	// Path is the filesystem path related to the error, if applicable.
	Path string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newStoreError builds a StoreError with the given code and message.
func newStoreError(code ErrorCode, path string, format string, args ...any) *StoreError {
	return &StoreError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

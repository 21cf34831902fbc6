package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface for interacting with a string key–value store.
//
// Absence of a key is not an error: reads of missing keys return the empty string.
// Errors are only returned if an operation could not be carried out (e.g. a
// persistent store failed to flush).
//
// Implementations are not required to be safe for concurrent use, use Shared
// to hand one store to many goroutines.
type IStore interface {
	// Insert inserts or updates a key–value pair and returns the value.
	Insert(key, value string) (string, error)
	// Get returns the value for a key or an empty string if the key is absent.
	Get(key string) (string, error)
	// Remove removes a key and returns its prior value or an empty string if the key was absent.
	Remove(key string) (string, error)
	// Clear removes all keys.
	Clear() error
	// Strings returns a copy of all key–value pairs (for serialization and inspection).
	Strings() map[string]string
}

// IFlusher is implemented by stores that can write their content to durable storage.
type IFlusher interface {
	// Write flushes the full content of the store.
	Write() error
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and optionally the underlying cause.
type Error struct {
	Code  RetCode // The return code
	Msg   string  // The error message.
	Cause error   // The underlying error (may be nil)
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCIOError:
		errorCode = "IOError"
	case RetCCorruptSnapshot:
		errorCode = "CorruptSnapshot"
	default:
		errorCode = "Unknown"
	}

	if e.Cause != nil {
		return fmt.Sprintf("StoreError (code %s): %s: %v", errorCode, e.Msg, e.Cause)
	}
	return fmt.Sprintf("StoreError (code %s): %s", errorCode, e.Msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new store Error with the given code, message and cause.
func NewError(code RetCode, msg string, cause error) *Error {
	return &Error{
		Code:  code,
		Msg:   msg,
		Cause: cause,
	}
}

// IsCode reports whether err is (or wraps) a store Error with the given code.
func IsCode(err error, code RetCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess         RetCode = iota // 0: Command executed successfully.
	RetCInternalError                  // 1: Command failed due to an internal error.
	RetCIOError                        // 2: Reading or writing the disk failed.
	RetCCorruptSnapshot                // 3: The snapshot on disk could not be parsed.
)

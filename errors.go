package replica

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNilCodec indicates MergeDocuments was called without a codec.
	ErrNilCodec = errors.New("nil codec")

	// ErrUnmarshal indicates the codec failed to unmarshal a document.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrCapability indicates a Clone method panicked and the value was copied reflectively.
	ErrCapability = errors.New("clone method failed")
)

// DocumentError represents a document that could not be decoded into a record.
type DocumentError struct {
	Err         error  // Underlying sentinel error (ErrUnmarshal)
	Index       int    // Position of the document in the MergeDocuments call
	ContentType string // Content type of the codec
	Cause       error  // Original error from the codec
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: document %d (%s): %v", e.Err.Error(), e.Index, e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s: document %d (%s)", e.Err.Error(), e.Index, e.ContentType)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// FallbackError describes a recovered panic from a type's Clone method.
// It is reported on SignalCloneFallback and never returned to callers.
type FallbackError struct {
	Type      string // Type whose Clone method panicked
	Recovered any    // Value passed to panic
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCapability.Error(), e.Type, e.Recovered)
}

func (e *FallbackError) Unwrap() error {
	return ErrCapability
}

// newDocumentError creates a DocumentError for decode failures.
func newDocumentError(sentinel error, index int, contentType string, cause error) error {
	return &DocumentError{
		Err:         sentinel,
		Index:       index,
		ContentType: contentType,
		Cause:       cause,
	}
}

// newFallbackError creates a FallbackError from a recovered panic value.
func newFallbackError(typeName string, recovered any) error {
	return &FallbackError{
		Type:      typeName,
		Recovered: recovered,
	}
}

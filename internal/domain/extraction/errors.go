package extraction

import "fmt"

// ValidationError reports missing or empty caller input. User-correctable.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// TransportError reports a failure reaching the model API: network,
// auth, quota, or timeout. Retryable by the end user.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a model reply that was not valid JSON after fence
// stripping. Resubmitting the same note may succeed since the model is
// non-deterministic.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError reports that the persistence medium was unavailable or
// rejected an operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

package contracts

import (
	"errors"
	"fmt"
)

// Sentinel causes for the screening error taxonomy.
// Match with errors.Is against the typed errors below.
var (
	ErrConversion       = errors.New("currency conversion failed")
	ErrUnknownScreener  = errors.New("unknown predefined screener")
	ErrBackendExecution = errors.New("screening backend failed")
	ErrInvalidFilter    = errors.New("invalid screening request")
)

// ConversionError reports a currency the converter cannot handle
type ConversionError struct {
	From   string
	To     string
	Field  string
	Reason string
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s: %s", e.From, e.To, e.Reason)
	if e.Field != "" {
		msg = fmt.Sprintf("field %s: %s", e.Field, msg)
	}
	return msg
}

// Is matches ErrConversion
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// UnknownScreenerError reports a name missing from the predefined catalog
type UnknownScreenerError struct {
	Name string
}

func (e *UnknownScreenerError) Error() string {
	return fmt.Sprintf("unknown predefined screener %q", e.Name)
}

// Is matches ErrUnknownScreener
func (e *UnknownScreenerError) Is(target error) bool { return target == ErrUnknownScreener }

// BackendExecutionError reports a failed, timed out or rejected service call
type BackendExecutionError struct {
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *BackendExecutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("screening backend returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("screening backend failed: %v", e.Err)
}

// Is matches ErrBackendExecution
func (e *BackendExecutionError) Is(target error) bool { return target == ErrBackendExecution }

// Unwrap exposes the transport error (e.g. context.DeadlineExceeded)
func (e *BackendExecutionError) Unwrap() error { return e.Err }

// InvalidFilterError reports a malformed request or filter triple
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid filter on %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// Is matches ErrInvalidFilter
func (e *InvalidFilterError) Is(target error) bool { return target == ErrInvalidFilter }

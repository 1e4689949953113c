package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// Standard errors. Every failure the core surfaces matches exactly one of
// these through errors.Is, so the HTTP facade can map each to a stable
// response code.
var (
	// ErrDuplicateName is returned when adding a connection under a name
	// that already exists.
	ErrDuplicateName = errors.New("connection name already exists")

	// ErrNotFound is returned when a connection name is not registered.
	ErrNotFound = errors.New("connection not found")

	// ErrConnectFailed is returned when the underlying driver cannot
	// establish a connection.
	ErrConnectFailed = errors.New("connection failed")

	// ErrUnsupportedOperation is returned when an operation is not
	// supported by the database kind or dialect.
	ErrUnsupportedOperation = errors.New("operation not supported by this database")

	// ErrQueryFailed is returned when the driver reports a statement error.
	ErrQueryFailed = errors.New("query failed")

	// ErrTimeout is returned when a driver call exceeds its deadline or is
	// cancelled.
	ErrTimeout = errors.New("operation timed out")

	// ErrBackupFailed is returned when the external dump tool exits
	// non-zero or cannot be started.
	ErrBackupFailed = errors.New("backup failed")

	// ErrInvalidInput is returned for malformed request payloads.
	ErrInvalidInput = errors.New("invalid input")
)

// DatabaseError wraps a driver-reported failure with database context.
// It matches ErrQueryFailed, or ErrTimeout when the cause is a context
// deadline or cancellation.
type DatabaseError struct {
	DatabaseID dbcapabilities.DatabaseID
	Operation  string
	Cause      error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.DatabaseID, e.Operation, e.Cause)
}

func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

func (e *DatabaseError) Is(target error) bool {
	if isDeadline(e.Cause) {
		return errors.Is(target, ErrTimeout)
	}
	if errors.Is(target, ErrQueryFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// WrapQuery wraps a driver error as a DatabaseError. Errors that are
// already classified pass through unchanged.
func WrapQuery(id dbcapabilities.DatabaseID, operation string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}
	var unsupported *UnsupportedOperationError
	if errors.As(err, &unsupported) {
		return err
	}
	return &DatabaseError{DatabaseID: id, Operation: operation, Cause: err}
}

func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// UnsupportedOperationError is returned when an operation is not supported.
type UnsupportedOperationError struct {
	DatabaseID dbcapabilities.DatabaseID
	Operation  string
	Reason     string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s does not support %s: %s", e.DatabaseID, e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s does not support %s", e.DatabaseID, e.Operation)
}

func (e *UnsupportedOperationError) Is(target error) bool {
	return errors.Is(target, ErrUnsupportedOperation)
}

// NewUnsupportedOperationError creates a new UnsupportedOperationError.
func NewUnsupportedOperationError(id dbcapabilities.DatabaseID, operation, reason string) *UnsupportedOperationError {
	return &UnsupportedOperationError{DatabaseID: id, Operation: operation, Reason: reason}
}

// ConnectionError is returned when establishing a connection fails.
type ConnectionError struct {
	DatabaseID dbcapabilities.DatabaseID
	Cause      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.DatabaseID, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

func (e *ConnectionError) Is(target error) bool {
	if errors.Is(target, ErrConnectFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(id dbcapabilities.DatabaseID, cause error) *ConnectionError {
	return &ConnectionError{DatabaseID: id, Cause: cause}
}

// BackupError is returned when the external dump tool fails. Stderr holds
// the tail of the tool's diagnostic output.
type BackupError struct {
	DatabaseID dbcapabilities.DatabaseID
	Tool       string
	Stderr     string
	Cause      error
}

func (e *BackupError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s backup via %s failed: %v: %s", e.DatabaseID, e.Tool, e.Cause, e.Stderr)
	}
	return fmt.Sprintf("%s backup via %s failed: %v", e.DatabaseID, e.Tool, e.Cause)
}

func (e *BackupError) Unwrap() error {
	return e.Cause
}

func (e *BackupError) Is(target error) bool {
	if isDeadline(e.Cause) {
		return errors.Is(target, ErrTimeout)
	}
	return errors.Is(target, ErrBackupFailed)
}

// NewBackupError creates a new BackupError.
func NewBackupError(id dbcapabilities.DatabaseID, tool, stderr string, cause error) *BackupError {
	return &BackupError{DatabaseID: id, Tool: tool, Stderr: stderr, Cause: cause}
}

// InvalidInputError is returned for malformed request payloads.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

// IsUnsupported checks if an error indicates an unsupported operation.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// IsTimeout checks if an error indicates a deadline or cancellation.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || isDeadline(err)
}

// IsNotFound checks if an error indicates a missing connection name.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

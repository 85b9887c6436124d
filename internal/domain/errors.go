// Package domain defines core types, interfaces, and errors for the insight agent.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RegistryLoadError indicates the semantic layer source could not be opened.
// Fatal to startup — there is no local recovery.
type RegistryLoadError struct {
	Path string
	Err  error
}

func (e *RegistryLoadError) Error() string {
	return fmt.Sprintf("load semantic layer %q: %v", e.Path, e.Err)
}

func (e *RegistryLoadError) Unwrap() error { return e.Err }

// QueryExecutionError indicates the built aggregation could not run against
// the cube view. It carries the generated SQL so the caller can report the
// exact query that failed.
type QueryExecutionError struct {
	SQL string
	Err error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v (sql: %s)", e.Err, e.SQL)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

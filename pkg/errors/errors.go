// Package errors provides custom error types for the stockmap system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the stockmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnreadableFile indicates that no encoding/delimiter combination
	// yielded a valid table for a file
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrColumnNotFound indicates that a mapping references a column
	// absent from the table it was resolved against
	ErrColumnNotFound = errors.New("column not found")

	// ErrMappingIncomplete indicates that an entity's column mapping is
	// missing its reference or quantity target
	ErrMappingIncomplete = errors.New("mapping incomplete")

	// ErrAggregationInconsistency marks non-numeric residue reaching
	// aggregation; unreachable when normalization is total, logged as a
	// defect marker rather than crashing the run
	ErrAggregationInconsistency = errors.New("aggregation inconsistency")

	// ErrNoSuppliers indicates that every supplier in a run failed
	ErrNoSuppliers = errors.New("no supplier ingested")

	// ErrNoPlatforms indicates that every platform in a run failed
	ErrNoPlatforms = errors.New("no platform merged")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ReadAttempt records one rejected encoding/delimiter combination tried
// while reading a delimited file.
type ReadAttempt struct {
	Encoding  string
	Delimiter string
	Reason    string
}

// String renders the attempt as "encoding/delimiter: reason".
func (a ReadAttempt) String() string {
	delim := a.Delimiter
	switch delim {
	case "\t":
		delim = "\\t"
	case " ":
		delim = "space"
	}
	return fmt.Sprintf("%s/%s: %s", a.Encoding, delim, a.Reason)
}

// UnreadableFileError reports a file for which no encoding/delimiter
// combination produced a valid table. The attempt list is the primary
// diagnostic surfaced to operators.
type UnreadableFileError struct {
	Path     string
	Attempts []ReadAttempt
}

// Error implements the error interface
func (e *UnreadableFileError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("unreadable file %s", e.Path)
	}
	lines := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		lines = append(lines, a.String())
	}
	return fmt.Sprintf("unreadable file %s: tried %d combinations:\n  %s",
		e.Path, len(e.Attempts), strings.Join(lines, "\n  "))
}

// Is implements errors.Is support
func (e *UnreadableFileError) Is(target error) bool {
	return target == ErrUnreadableFile
}

// NewUnreadableFileError creates a new UnreadableFileError
func NewUnreadableFileError(path string, attempts []ReadAttempt) *UnreadableFileError {
	return &UnreadableFileError{Path: path, Attempts: attempts}
}

// ColumnNotFoundError reports a mapping source that resolved to no column.
// Available carries every column of the table as "index:label" so an
// operator can correct the mapping without reopening the file.
type ColumnNotFoundError struct {
	Source    string
	Available []string
}

// Error implements the error interface
func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found; available columns: [%s]",
		e.Source, strings.Join(e.Available, ", "))
}

// Is implements errors.Is support
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// NewColumnNotFoundError creates a new ColumnNotFoundError from the
// table's ordered column labels.
func NewColumnNotFoundError(source string, columns []string) *ColumnNotFoundError {
	available := make([]string, len(columns))
	for i, label := range columns {
		available[i] = fmt.Sprintf("%d:%s", i, label)
	}
	return &ColumnNotFoundError{Source: source, Available: available}
}

// MappingError reports an entity whose column mapping cannot be used:
// the reference or quantity target is missing from configuration.
// The entity is skipped before any read attempt.
type MappingError struct {
	Entity  string
	Missing string
	Message string
}

// Error implements the error interface
func (e *MappingError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("mapping for %s incomplete: no %s target", e.Entity, e.Missing)
	}
	return fmt.Sprintf("mapping for %s invalid: %s", e.Entity, e.Message)
}

// Is implements errors.Is support
func (e *MappingError) Is(target error) bool {
	return target == ErrMappingIncomplete
}

// NewMappingError creates a new MappingError for a missing target.
func NewMappingError(entity, missing string) *MappingError {
	return &MappingError{Entity: entity, Missing: missing}
}

// EntityError scopes a failure to a single supplier or platform so one
// entity's failure never aborts the whole run.
type EntityError struct {
	Kind   string // "supplier" or "platform"
	Entity string
	Err    error
}

// Error implements the error interface
func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Entity, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *EntityError) Unwrap() error {
	return e.Err
}

// NewEntityError creates a new EntityError
func NewEntityError(kind, entity string, err error) *EntityError {
	return &EntityError{Kind: kind, Entity: entity, Err: err}
}

// AggregationError represents non-numeric residue detected during
// aggregation. Given a total normalizer this should be unreachable; it is
// caught and logged as a defect marker rather than crashing the run.
type AggregationError struct {
	ProductID string
	Value     string
}

// Error implements the error interface
func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation inconsistency for product %s: non-numeric quantity %q", e.ProductID, e.Value)
}

// Is implements errors.Is support
func (e *AggregationError) Is(target error) bool {
	return target == ErrAggregationInconsistency
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "csv", "xlsx", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnreadableFile checks if an error is an unreadable file error
func IsUnreadableFile(err error) bool {
	return errors.Is(err, ErrUnreadableFile)
}

// IsColumnNotFound checks if an error is a column resolution failure
func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

// IsMappingIncomplete checks if an error is an incomplete mapping error
func IsMappingIncomplete(err error) bool {
	return errors.Is(err, ErrMappingIncomplete)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapEntity wraps an error as an EntityError
func WrapEntity(kind, entity string, err error) error {
	if err == nil {
		return nil
	}
	return NewEntityError(kind, entity, err)
}

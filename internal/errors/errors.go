// Package errors provides sentinel errors and error types for the move tree.
// It defines the failure conditions of the tree, cursor, drill and notation
// packages plus structured error types that preserve context while allowing
// inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrPathNotFound indicates a path whose selectors do not exist in the tree.
	ErrPathNotFound = errors.New("path not found")

	// ErrPlyIndexOutOfRange indicates a ply index outside [-1, len-1] of its line.
	ErrPlyIndexOutOfRange = errors.New("ply index out of range")

	// ErrInvalidCursorTarget indicates a cursor jump to a position that does not exist.
	ErrInvalidCursorTarget = errors.New("invalid cursor target")

	// ErrIllegalMove indicates a move the rules oracle rejected.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoFirstMoveAlternative indicates an attempt to branch before the
	// main line's first move. It is joined with ErrPlyIndexOutOfRange.
	ErrNoFirstMoveAlternative = errors.New("main line's first move cannot have alternatives")

	// ErrDuplicateMove indicates a move identical to the existing next move.
	ErrDuplicateMove = errors.New("duplicate of existing continuation")

	// ErrParseFailure indicates malformed move text.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStudyNotFound indicates an unknown study identifier.
	ErrStudyNotFound = errors.New("study not found")
)

// MoveError wraps errors with move tree context: the addressed path,
// the ply within that path's line and the move text involved.
// It implements the error interface and supports unwrapping via
// errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	Path     string // Path in text form (empty if not applicable)
	Ply      int    // Ply index within the addressed line
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path %s", e.Path))
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a move text parsing error with location context.
type ParseError struct {
	Err      error  // The underlying error
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		loc := fmt.Sprintf("%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsNavigation reports whether err is a navigation failure that callers
// should answer by falling back to the start of the tree.
func IsNavigation(err error) bool {
	return errors.Is(err, ErrPathNotFound) ||
		errors.Is(err, ErrInvalidCursorTarget) ||
		errors.Is(err, ErrPlyIndexOutOfRange)
}

// Is reports whether any error in err's tree matches target. It saves
// callers from importing both this package and the standard one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

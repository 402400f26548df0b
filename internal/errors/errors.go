package errors

import "fmt"

// ErrorType represents the category of error
type ErrorType int

const (
	// NotARepository - no git root found walking up from the start directory
	NotARepository ErrorType = iota
	// NoCommitsForAuthor - the author has no commits under the active filter
	NoCommitsForAuthor
	// HistoryUnavailable - the git binary is missing or failed unexpectedly
	HistoryUnavailable
	// PRSourceUnavailable - a single PR source could not produce a count
	PRSourceUnavailable
	// UsageError - malformed command-line input
	UsageError
)

// Error is a categorized error. Fatal categories terminate the run before
// any report is produced; PRSourceUnavailable is recovered inside the
// fallback chain and never surfaces to the caller.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on category so callers can test with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Fatal reports whether an error of this category aborts the run
func (e *Error) Fatal() bool {
	return e.Type != PRSourceUnavailable
}

// New creates an error with the given category
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates an error with the given category and formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a category and message to an existing error
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Type: errType, Message: message, Cause: err}
}

// Convenience constructors for the taxonomy

func NotARepositoryErrorf(format string, args ...interface{}) *Error {
	return Newf(NotARepository, format, args...)
}

func NoCommitsErrorf(format string, args ...interface{}) *Error {
	return Newf(NoCommitsForAuthor, format, args...)
}

func HistoryError(err error, message string) *Error {
	return Wrap(err, HistoryUnavailable, message)
}

func SourceUnavailable(err error, message string) *Error {
	return Wrap(err, PRSourceUnavailable, message)
}

func UsageErrorf(format string, args ...interface{}) *Error {
	return Newf(UsageError, format, args...)
}

// GetType returns the category of an error, HistoryUnavailable for
// uncategorized errors
func GetType(err error) ErrorType {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return HistoryUnavailable
}

package errors

import "fmt"

// ErrorCode represents a Chalk error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"       // 404
	ErrWeekAlreadyExists   ErrorCode = "WEEK_ALREADY_EXISTS"  // 409
	ErrConflict            ErrorCode = "CONFLICT"             // 409
	ErrMissingTopic        ErrorCode = "MISSING_TOPIC"        // 422
	ErrCancelled           ErrorCode = "CANCELLED"            // 499
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// ChalkError carries a stable code and HTTP-style status alongside the
// message, so every surface (CLI, MCP, web) can map it consistently.
type ChalkError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

func (e *ChalkError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, status int, msg string) *ChalkError {
	return &ChalkError{Code: code, Status: status, Message: msg}
}

// NewAmbiguousAddressing reports that both id and week were given.
func NewAmbiguousAddressing() *ChalkError {
	return newError(ErrAmbiguousAddressing, 400, "cannot specify both id and week; use one addressing mode")
}

// NewInvalidRequest reports a bad request parameter.
func NewInvalidRequest(msg string) *ChalkError {
	return newError(ErrInvalidRequest, 400, msg)
}

// NewNotFound reports a plan that does not exist.
func NewNotFound(identifier string) *ChalkError {
	e := newError(ErrNotFound, 404, fmt.Sprintf("plan not found: %s", identifier))
	e.Details = map[string]any{"identifier": identifier}
	return e
}

// NewFileNotFound reports a missing import file.
func NewFileNotFound(path string) *ChalkError {
	e := newError(ErrFileNotFound, 404, fmt.Sprintf("file not found: %s", path))
	e.Details = map[string]any{"path": path}
	return e
}

// NewWeekAlreadyExists reports a week-number collision.
func NewWeekAlreadyExists(week int) *ChalkError {
	e := newError(ErrWeekAlreadyExists, 409, fmt.Sprintf("a plan for week %d already exists", week))
	e.Details = map[string]any{"week": week}
	return e
}

// NewConflict reports a general conflict.
func NewConflict(msg string) *ChalkError {
	return newError(ErrConflict, 409, msg)
}

// NewMissingTopic reports a lesson day without a topic.
func NewMissingTopic(day int) *ChalkError {
	e := newError(ErrMissingTopic, 422, fmt.Sprintf("day %d is missing a topic", day))
	e.Details = map[string]any{"day": day}
	return e
}

// NewCancelled reports an operation stopped by context cancellation.
func NewCancelled(operation string) *ChalkError {
	return newError(ErrCancelled, 499, fmt.Sprintf("%s cancelled", operation))
}

// NewInternal wraps an unexpected error. The message keeps the underlying
// error text; outward surfaces decide whether to show it.
func NewInternal(err error) *ChalkError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return newError(ErrInternal, 500, msg)
}

// Is reports whether err is a ChalkError with the given code.
func Is(err error, code ErrorCode) bool {
	cErr, ok := err.(*ChalkError)
	return ok && cErr.Code == code
}

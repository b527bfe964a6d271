package errors

import (
	"fmt"
)

// ResourceErrorKind classifies a failed remote call.
type ResourceErrorKind string

const (
	// KindNotFound maps HTTP 404 responses.
	KindNotFound ResourceErrorKind = "not_found"
	// KindUnauthorized maps HTTP 401 and 403 responses.
	KindUnauthorized ResourceErrorKind = "unauthorized"
	// KindConflict maps HTTP 409 responses.
	KindConflict ResourceErrorKind = "conflict"
	// KindServerError maps HTTP 5xx responses.
	KindServerError ResourceErrorKind = "server_error"
	// KindTransportFailure marks connection-level failures with no HTTP status.
	KindTransportFailure ResourceErrorKind = "transport_failure"
)

// ResourceError represents a failed call against a remote orchestrator API.
type ResourceError struct {
	Kind   ResourceErrorKind
	Status int
	Method string
	Path   string
	Err    error
}

// NewResourceError constructs a ResourceError for the given request.
func NewResourceError(kind ResourceErrorKind, status int, method, path string, err error) error {
	return &ResourceError{Kind: kind, Status: status, Method: method, Path: path, Err: err}
}

func (e *ResourceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("resource error [%s]: %s %s returned %d", e.Kind, e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("resource error [%s]: %s %s: %v", e.Kind, e.Method, e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ResourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SpecNotFoundError indicates a requirement spec name missing from the registry.
type SpecNotFoundError struct {
	Name string
}

// NewSpecNotFoundError constructs a SpecNotFoundError.
func NewSpecNotFoundError(name string) error {
	return &SpecNotFoundError{Name: name}
}

func (e *SpecNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("requirement spec not found: %q", e.Name)
}

// VerificationAbortedError wraps the resource error that interrupted a
// verification fetch. No verdicts exist when this error is returned: a
// judgment over a partial configuration snapshot would be misleading.
type VerificationAbortedError struct {
	Spec string
	Err  error
}

// NewVerificationAbortedError constructs a VerificationAbortedError.
func NewVerificationAbortedError(spec string, err error) error {
	return &VerificationAbortedError{Spec: spec, Err: err}
}

func (e *VerificationAbortedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("verification aborted for spec %s: %v", e.Spec, e.Err)
}

// Unwrap exposes the fetch error.
func (e *VerificationAbortedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures profile or spec file validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

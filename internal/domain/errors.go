// Package domain defines the core business entities and errors.
package domain

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure. Kinds are comparable sentinels, so callers can
// write errors.Is(err, domain.KindValidation) against any *Error in a chain.
type Kind string

// Error implements the error interface so a Kind can be used as an errors.Is target.
func (k Kind) Error() string {
	return string(k)
}

// Failure kinds recognised by the API boundary.
const (
	// KindConfigMissing is returned when a credential needed by an operation is absent.
	KindConfigMissing Kind = "config missing"

	// KindValidation is returned when request input fails validation.
	KindValidation Kind = "validation failed"

	KindCategoryNotFound     Kind = "category not found"
	KindBrandNotFound        Kind = "brand not found"
	KindUnitNotFound         Kind = "unit not found"
	KindClientNotFound       Kind = "client not found"
	KindProductAlreadyExists Kind = "product already exists"

	// KindUpstreamTimeout is returned when an upstream call exceeds its deadline.
	KindUpstreamTimeout Kind = "upstream timeout"

	// KindUpstreamCallFailed covers non-2xx reads and transport failures.
	KindUpstreamCallFailed Kind = "upstream call failed"

	KindUpstreamCreateFailed   Kind = "upstream create failed"
	KindDocumentCreationFailed Kind = "document creation failed"
	KindTrialLimitReached      Kind = "trial limit reached"
	KindRegisterNotConfigured  Kind = "register not configured"
)

// kindDefaults holds the wire code and HTTP status used when an error does not
// override them.
var kindDefaults = map[Kind]struct {
	code   string
	status int
}{
	KindConfigMissing:          {"CONFIG_MISSING", http.StatusInternalServerError},
	KindValidation:             {"VALIDATION_ERROR", http.StatusBadRequest},
	KindCategoryNotFound:       {"CATEGORY_NOT_FOUND", http.StatusNotFound},
	KindBrandNotFound:          {"BRAND_NOT_FOUND", http.StatusNotFound},
	KindUnitNotFound:           {"UNIT_NOT_FOUND", http.StatusNotFound},
	KindClientNotFound:         {"CLIENT_NOT_FOUND", http.StatusNotFound},
	KindProductAlreadyExists:   {"PRODUCT_ALREADY_EXISTS", http.StatusConflict},
	KindUpstreamTimeout:        {"VENDUS_TIMEOUT", http.StatusGatewayTimeout},
	KindUpstreamCallFailed:     {"VENDUS_ERROR", http.StatusBadGateway},
	KindUpstreamCreateFailed:   {"VENDUS_CREATE_FAILED", http.StatusBadGateway},
	KindDocumentCreationFailed: {"VENDUS_DOCUMENT_CREATION_FAILED", http.StatusBadGateway},
	KindTrialLimitReached:      {"VENDUS_TRIAL_LIMIT_REACHED", http.StatusBadGateway},
	KindRegisterNotConfigured:  {"VENDUS_REGISTER_NOT_CONFIGURED", http.StatusBadGateway},
}

// Code returns the default wire code for the kind.
func (k Kind) Code() string {
	if d, ok := kindDefaults[k]; ok {
		return d.code
	}
	return "INTERNAL_SERVER_ERROR"
}

// Status returns the default HTTP status for the kind.
func (k Kind) Status() int {
	if d, ok := kindDefaults[k]; ok {
		return d.status
	}
	return http.StatusInternalServerError
}

// Error is the single failure type produced by the workflows. Code and Status
// are what the HTTP boundary renders; Details is optional structured context
// for the caller (suppressed by the boundary for 5xx statuses).
type Error struct {
	Kind    Kind
	Code    string
	Status  int
	Message string
	Details any
	Err     error
}

// NewError creates an Error of the given kind with the kind's default code and status.
func NewError(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    kind.Code(),
		Status:  kind.Status(),
		Message: message,
	}
}

// NewValidationError creates a validation error naming the offending field.
func NewValidationError(field, message string) *Error {
	return NewError(KindValidation, message).WithDetails(map[string]any{"field": field})
}

// NewNotFoundError creates a lookup miss listing what the upstream does offer.
// A nil available slice is rendered as an empty list.
func NewNotFoundError(kind Kind, message string, available []any) *Error {
	if available == nil {
		available = []any{}
	}
	return NewError(kind, message).WithDetails(map[string]any{"available": available})
}

// NewUpstreamError creates an error that mirrors an upstream HTTP status.
func NewUpstreamError(kind Kind, status int, message string, details any) *Error {
	return NewError(kind, message).WithStatus(status).WithDetails(details)
}

// WithCode overrides the wire code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithStatus overrides the HTTP status.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// WithDetails attaches caller-visible details.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", msg, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Code)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

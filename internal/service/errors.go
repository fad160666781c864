package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/ieop-api/internal/domain"
)

// ServiceError wraps an unexpected failure with the service and operation in
// which it happened.
type ServiceError struct {
	// Service names the service, for example "product"
	Service string
	// Op is the operation that failed, for example "create_product"
	Op string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for the given service and operation.
// Domain errors are returned unchanged: they already carry the status and
// code the API layer reports.
func NewServiceError(service, op string, err error) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

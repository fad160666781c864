package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/ieop-api/internal/api/shared"
	"github.com/phrazzld/ieop-api/internal/domain"
)

// CodeInternal is the error code of any failure without a domain mapping.
const CodeInternal = "INTERNAL_SERVER_ERROR"

// MapErrorToStatusCode maps an error to the HTTP status it is reported with.
// Domain errors carry their own status; anything else is a 500.
func MapErrorToStatusCode(err error) int {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Status > 0 {
		return domainErr.Status
	}
	var kind domain.Kind
	if errors.As(err, &kind) {
		return kind.Status()
	}
	return http.StatusInternalServerError
}

// GetSafeErrorCode returns the wire code reported for err. Unknown errors are
// reported as INTERNAL_SERVER_ERROR so internal messages never leak.
func GetSafeErrorCode(err error) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code
	}
	var kind domain.Kind
	if errors.As(err, &kind) {
		return kind.Code()
	}
	return CodeInternal
}

// HandleAPIError writes the error envelope for err and logs it. Details are
// only forwarded for domain errors and never for 5xx statuses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	code := GetSafeErrorCode(err)

	var opts []shared.ResponseOption
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		opts = append(opts, shared.WithDetails(domainErr.Details))
		if isUpstreamRejection(domainErr.Kind) {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
	}

	shared.RespondWithErrorAndLog(w, r, status, code, err, opts...)
}

func isUpstreamRejection(kind domain.Kind) bool {
	switch kind {
	case domain.KindUpstreamCallFailed,
		domain.KindUpstreamCreateFailed,
		domain.KindDocumentCreationFailed,
		domain.KindTrialLimitReached,
		domain.KindRegisterNotConfigured:
		return true
	default:
		return false
	}
}

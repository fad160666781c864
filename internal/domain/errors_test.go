package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindDefaults(t *testing.T) {
	tests := []struct {
		kind   Kind
		code   string
		status int
	}{
		{KindConfigMissing, "CONFIG_MISSING", http.StatusInternalServerError},
		{KindValidation, "VALIDATION_ERROR", http.StatusBadRequest},
		{KindCategoryNotFound, "CATEGORY_NOT_FOUND", http.StatusNotFound},
		{KindBrandNotFound, "BRAND_NOT_FOUND", http.StatusNotFound},
		{KindUnitNotFound, "UNIT_NOT_FOUND", http.StatusNotFound},
		{KindClientNotFound, "CLIENT_NOT_FOUND", http.StatusNotFound},
		{KindProductAlreadyExists, "PRODUCT_ALREADY_EXISTS", http.StatusConflict},
		{KindUpstreamTimeout, "VENDUS_TIMEOUT", http.StatusGatewayTimeout},
		{KindUpstreamCallFailed, "VENDUS_ERROR", http.StatusBadGateway},
		{KindTrialLimitReached, "VENDUS_TRIAL_LIMIT_REACHED", http.StatusBadGateway},
		{Kind("unknown"), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.code, tc.kind.Code())
			assert.Equal(t, tc.status, tc.kind.Status())
		})
	}
}

func TestErrorMatchesKind(t *testing.T) {
	err := NewUpstreamError(KindUpstreamCallFailed, 503, "categories lookup failed", nil).
		WithCode("VENDUS_CATEGORIES_FAILED")
	wrapped := fmt.Errorf("create product: %w", err)

	assert.True(t, errors.Is(wrapped, KindUpstreamCallFailed))
	assert.False(t, errors.Is(wrapped, KindUpstreamTimeout))

	var domainErr *Error
	require.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, 503, domainErr.Status)
	assert.Equal(t, "VENDUS_CATEGORIES_FAILED", domainErr.Code)
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(KindUpstreamCallFailed, "request failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "VENDUS_ERROR")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("ClientEmail", "client email is required")

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, map[string]any{"field": "ClientEmail"}, err.Details)
}

func TestNewNotFoundErrorAvailableNeverNil(t *testing.T) {
	err := NewNotFoundError(KindClientNotFound, "client not found", nil)

	assert.Equal(t, map[string]any{"available": []any{}}, err.Details)
}

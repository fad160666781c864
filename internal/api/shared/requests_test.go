package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string `json:"title" validate:"required"`
	Price any    `json:"price"`
	Email string `json:"email" validate:"omitempty,email"`
}

func newBodyRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      sampleRequest
		wantCode  string
		wantField string
	}{
		{
			name: "valid json keeps numbers exact",
			body: `{"title": "Clio", "price": 12.10}`,
			want: sampleRequest{Title: "Clio", Price: json.Number("12.10")},
		},
		{
			name: "empty body reads as empty object",
			body: "",
			want: sampleRequest{},
		},
		{
			name: "miscased keys are ignored",
			body: `{"TITLE": "Clio", "Price": 5, "email": "ana@example.com"}`,
			want: sampleRequest{Email: "ana@example.com"},
		},
		{
			name: "exact key wins over miscased duplicate",
			body: `{"Title": "Other", "title": "Clio", "TITLE": "Third"}`,
			want: sampleRequest{Title: "Clio"},
		},
		{
			name:     "trailing comma",
			body:     `{"title": "Clio",}`,
			wantCode: CodeInvalidJSON,
		},
		{
			name:     "trailing data",
			body:     `{"title": "Clio"} {}`,
			wantCode: CodeInvalidJSON,
		},
		{
			name:      "wrong field type",
			body:      `{"title": 5}`,
			wantCode:  "VALIDATION_ERROR",
			wantField: "title",
		},
		{
			name:      "array body",
			body:      `[1, 2]`,
			wantCode:  "VALIDATION_ERROR",
			wantField: "body",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got sampleRequest
			err := DecodeJSON(newBodyRequest(tc.body), &got)

			if tc.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}

			var domainErr *domain.Error
			require.True(t, errors.As(err, &domainErr), "got %v", err)
			assert.Equal(t, tc.wantCode, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.Status)
			if tc.wantField != "" {
				assert.Equal(t, map[string]any{"field": tc.wantField}, domainErr.Details)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	raw, err := ReadJSON(newBodyRequest("  \n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))

	raw, err = ReadJSON(newBodyRequest(`{"client": {"name": "Ana"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"client": {"name": "Ana"}}`, string(raw))

	_, err = ReadJSON(newBodyRequest(`{"name": `))
	assert.ErrorIs(t, err, domain.KindValidation)

	_, err = ReadJSON(newBodyRequest(strings.Repeat(" ", MaxBodyBytes+1)))
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeInvalidJSON, domainErr.Code)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
	}{
		{name: "valid", req: sampleRequest{Title: "Clio"}},
		{name: "missing title", req: sampleRequest{}, wantField: "title"},
		{name: "bad email", req: sampleRequest{Title: "Clio", Email: "nope"}, wantField: "email"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(&tc.req)

			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var domainErr *domain.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
			assert.Equal(t, map[string]any{"field": tc.wantField}, domainErr.Details)
		})
	}
}

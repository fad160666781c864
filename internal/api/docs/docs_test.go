package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHandlerOpenAPIJSON(t *testing.T) {
	h, err := NewHandler("https://api.example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.OpenAPIJSON(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var spec map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.0", spec["openapi"])
	assert.Equal(t, []any{map[string]any{"url": "https://api.example.com"}}, spec["servers"])

	paths, ok := spec["paths"].(map[string]any)
	require.True(t, ok)
	for _, path := range []string{"/health", "/products", "/clients", "/documents"} {
		assert.Contains(t, paths, path)
	}
}

func TestHandlerOpenAPIYAML(t *testing.T) {
	h, err := NewHandler("")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.OpenAPIYAML(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var spec map[string]any
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &spec))
	assert.Equal(t, []any{map[string]any{"url": "http://localhost:3000"}}, spec["servers"])
}

func TestHandlerSwaggerUI(t *testing.T) {
	h, err := NewHandler("")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.SwaggerUI(w, httptest.NewRequest(http.MethodGet, "/docs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `url: "/openapi.json"`)
}

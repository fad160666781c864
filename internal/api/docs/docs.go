// Package docs serves the OpenAPI description of the HTTP API and a Swagger
// UI page that renders it.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var specYAML []byte

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>IEOP API V2</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: "/openapi.json", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

// Handler serves the API description. Both renderings are built once.
type Handler struct {
	jsonBody []byte
	yamlBody []byte
}

// NewHandler parses the embedded description and points its servers list at
// serverURL.
func NewHandler(serverURL string) (*Handler, error) {
	var spec map[string]any
	if err := yaml.Unmarshal(specYAML, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if serverURL != "" {
		spec["servers"] = []any{map[string]any{"url": serverURL}}
	}

	jsonBody, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi document as JSON: %w", err)
	}
	yamlBody, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi document as YAML: %w", err)
	}

	return &Handler{jsonBody: jsonBody, yamlBody: yamlBody}, nil
}

// OpenAPIJSON handles GET /openapi.json requests.
func (h *Handler) OpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	write(w, "application/json", h.jsonBody)
}

// OpenAPIYAML handles GET /openapi.yaml requests.
func (h *Handler) OpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	write(w, "application/yaml", h.yamlBody)
}

// SwaggerUI handles GET /docs requests.
func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	write(w, "text/html; charset=utf-8", []byte(swaggerPage))
}

func write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

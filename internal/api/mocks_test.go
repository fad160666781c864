package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// mockProductService is a mock implementation of service.ProductService.
type mockProductService struct {
	listProductsFn  func(ctx context.Context) ([]domain.EssentialProduct, error)
	createProductFn func(ctx context.Context, input domain.ProductInput) (any, error)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]domain.EssentialProduct, error) {
	return m.listProductsFn(ctx)
}

func (m *mockProductService) CreateProduct(ctx context.Context, input domain.ProductInput) (any, error) {
	return m.createProductFn(ctx, input)
}

// mockClientService is a mock implementation of service.ClientService.
type mockClientService struct {
	createClientFn func(ctx context.Context, body json.RawMessage) (any, error)
}

func (m *mockClientService) CreateClient(ctx context.Context, body json.RawMessage) (any, error) {
	return m.createClientFn(ctx, body)
}

// mockDocumentService is a mock implementation of service.DocumentService.
type mockDocumentService struct {
	listDocumentsFn  func(ctx context.Context) (any, error)
	createDocumentFn func(ctx context.Context, input domain.DocumentInput) (*domain.DocumentReceipt, error)
}

func (m *mockDocumentService) ListDocuments(ctx context.Context) (any, error) {
	return m.listDocumentsFn(ctx)
}

func (m *mockDocumentService) CreateDocument(
	ctx context.Context,
	input domain.DocumentInput,
) (*domain.DocumentReceipt, error) {
	return m.createDocumentFn(ctx, input)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeEnvelope decodes a response body with json.Number preserved.
func decodeEnvelope(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	return out
}

package vendus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	resource, method, outcome string
}

type recorderStub struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recorderStub) ObserveRequest(resource, method, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{resource, method, outcome})
}

func newTestClient(t *testing.T, baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewClient(config.VendusConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: timeout,
	}, logger, opts...)
}

func TestClientDo(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 295783271, "price": 12.10}`))
	}))
	defer server.Close()

	recorder := &recorderStub{}
	client := newTestClient(t, server.URL+"/", "secret-key", time.Second, WithRecorder(recorder))

	resp, err := client.Do(context.Background(), Request{
		Method:   http.MethodPost,
		Resource: "products",
		Query:    url.Values{"reference": {"CAR-1"}},
		Body:     map[string]any{"title": "Clio"},
	})

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, map[string]any{"id": json.Number("295783271"), "price": json.Number("12.10")}, resp.Body)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/products", gotReq.URL.Path)
	assert.Equal(t, "CAR-1", gotReq.URL.Query().Get("reference"))
	assert.Equal(t, "Bearer secret-key", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, map[string]any{"title": "Clio"}, gotBody)

	assert.Equal(t, []observation{{"products", http.MethodPost, "201"}}, recorder.seen)
}

func TestClientDoWithoutBodyOmitsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "key", time.Second)
	resp, err := client.Do(context.Background(), Request{Resource: "documents"})

	require.NoError(t, err)
	assert.Nil(t, resp.Body)
}

func TestClientDoMissingAPIKey(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "", time.Second)
	_, err := client.Do(context.Background(), Request{Resource: "products"})

	assert.ErrorIs(t, err, domain.KindConfigMissing)
	assert.False(t, client.Configured())
	assert.Zero(t, calls)
}

func TestClientDoTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	recorder := &recorderStub{}
	client := newTestClient(t, server.URL, "key", 50*time.Millisecond, WithRecorder(recorder))
	_, err := client.Do(context.Background(), Request{Resource: "clients", Method: http.MethodPost, Body: map[string]any{}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.KindUpstreamTimeout)
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusGatewayTimeout, domainErr.Status)
	assert.Equal(t, "VENDUS_TIMEOUT", domainErr.Code)
	assert.Equal(t, []observation{{"clients", http.MethodPost, OutcomeTimeout}}, recorder.seen)
}

func TestClientDoCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, "key", 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := client.Do(ctx, Request{Resource: "products"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.KindUpstreamTimeout)
}

func TestClientDoTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL, "key", time.Second)
	_, err := client.Do(context.Background(), Request{Resource: "products"})

	assert.ErrorIs(t, err, domain.KindUpstreamCallFailed)
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusBadGateway, domainErr.Status)
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "key", time.Second)
	_, err := client.Fetch(context.Background(), Request{Resource: "documents"},
		"VENDUS_FETCH_FAILED", "Failed to fetch documents")

	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.KindUpstreamCallFailed, domainErr.Kind)
	assert.Equal(t, "VENDUS_FETCH_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, domainErr.Status)
	assert.Equal(t, map[string]any{"raw": "<html>maintenance</html>"}, domainErr.Details)
	assert.Contains(t, domainErr.Message, "(503)")

	resp, err := client.Do(context.Background(), Request{Resource: "documents"})
	require.NoError(t, err)
	assert.True(t, resp.Malformed)
	assert.Equal(t, "<html>maintenance</html>", resp.Raw)
}

func TestNewClientDefaults(t *testing.T) {
	client := newTestClient(t, "", "key", 0)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.Panics(t, func() { NewClient(config.VendusConfig{}, nil) })
}

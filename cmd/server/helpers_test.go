package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeVendus answers upstream calls from canned JSON bodies keyed by
// "METHOD /path". Requests carrying a reference query get refHits.
type fakeVendus struct {
	*httptest.Server

	mu      sync.Mutex
	routes  map[string]fakeReply
	refHits string
	calls   []string
}

type fakeReply struct {
	status int
	body   string
}

func newFakeVendus(t *testing.T) *fakeVendus {
	t.Helper()
	f := &fakeVendus{routes: map[string]fakeReply{}, refHits: `[]`}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeVendus) reply(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fakeReply{status: status, body: body}
}

func (f *fakeVendus) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls = append(f.calls, key)
	reply, ok := f.routes[key]
	if r.Method == http.MethodGet && r.URL.Query().Get("reference") != "" {
		reply, ok = fakeReply{status: http.StatusOK, body: f.refHits}, true
	}
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.status)
	_, _ = io.WriteString(w, reply.body)
}

func (f *fakeVendus) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

// mockEventHandler is a testify mock receiving audit events.
type mockEventHandler struct {
	mock.Mock
}

func (m *mockEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testConfig(baseURL, apiKey string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:       3000,
			Env:        "test",
			LogLevel:   "debug",
			CORSOrigin: "*",
		},
		Vendus: config.VendusConfig{
			BaseURL:         baseURL,
			APIKey:          apiKey,
			RegisterID:      "7001",
			PaymentMethodID: 295779699,
			Timeout:         time.Second,
		},
		Docs:    config.DocsConfig{Enabled: true, ServerURL: "http://api.test"},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	app, err := newApplication(cfg, testLogger())
	require.NoError(t, err)
	return app
}

// do sends one request through the router and returns the recorder.
func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

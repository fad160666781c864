package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
)

// fakeRoute answers one upstream call with a status and a raw body.
type fakeRoute func(r *http.Request) (int, string)

// recordedCall is one request received by the fake upstream.
type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeVendus is an httptest server standing in for the Vendus API.
// Unregistered routes answer 404.
type fakeVendus struct {
	mu     sync.Mutex
	routes map[string]fakeRoute
	calls  []recordedCall
	server *httptest.Server
}

func newFakeVendus(t *testing.T) *fakeVendus {
	t.Helper()
	f := &fakeVendus{routes: make(map[string]fakeRoute)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeVendus) serve(w http.ResponseWriter, r *http.Request) {
	call := recordedCall{
		Method: r.Method,
		Path:   strings.TrimPrefix(r.URL.Path, "/"),
		Query:  r.URL.Query(),
	}
	if r.Body != nil {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		_ = dec.Decode(&call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	route, ok := f.routes[call.Method+" "+call.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"code":"N404","message":"not found"}]}`))
		return
	}
	status, body := route(r)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeVendus) handle(method, resource string, route fakeRoute) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+resource] = route
}

func (f *fakeVendus) reply(method, resource string, status int, body string) {
	f.handle(method, resource, func(*http.Request) (int, string) { return status, body })
}

func (f *fakeVendus) callsTo(method, resource string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []recordedCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == resource {
			matched = append(matched, c)
		}
	}
	return matched
}

func (f *fakeVendus) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeVendus) config(apiKey string) config.VendusConfig {
	return config.VendusConfig{
		BaseURL:         f.server.URL,
		APIKey:          apiKey,
		RegisterID:      "7001",
		PaymentMethodID: 295779699,
		Timeout:         time.Second,
	}
}

func (f *fakeVendus) client(apiKey string) *vendus.Client {
	return vendus.NewClient(f.config(apiKey), testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// recordingEmitter captures emitted events and optionally fails.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (e *recordingEmitter) Emit(_ context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) emitted() []*events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*events.Event(nil), e.events...)
}

func fixedClock(millis int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(millis) }
}

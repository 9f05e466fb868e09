package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/stream"
)

// newTestServer returns a server over an in-memory store with a noop
// publisher and a real stream bus.
func newTestServer(t *testing.T, opts ...Option) (*TrackerServer, *mockStore) {
	t.Helper()
	st := newMockStore()
	bus := stream.NewBus(stream.NewRegistry(), stream.Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewTrackerServer(st, &events.NoopPublisher{}, bus, opts...), st
}

// seedFarm adds a farm directly to the store.
func seedFarm(t *testing.T, st *mockStore, id, name string) {
	t.Helper()
	st.farms[id] = &model.Farm{ID: id, Name: name, Location: "Valley Rd", Owner: "Alice"}
}

// seedProduct adds a product directly to the store.
func seedProduct(t *testing.T, st *mockStore, p *model.Product) {
	t.Helper()
	if p.TrackingHistory == nil {
		p.TrackingHistory = []model.TrackingStage{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
		p.UpdatedAt = p.CreatedAt
	}
	st.products[p.ID] = p
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out (when non-nil).
func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("unmarshal response: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.NewHTTPHandler("")

	rec := doJSON(t, h, http.MethodGet, "/v1/health", nil, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, st := newTestServer(t)
	seedFarm(t, st, "fm-1", "Green Acres")
	h := srv.NewHTTPHandler("secret")

	// Health is exempt.
	rec := doJSON(t, h, http.MethodGet, "/v1/health", nil, nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health with auth enabled returned %d", rec.Code)
	}

	// Missing token.
	rec = doJSON(t, h, http.MethodGet, "/v1/products", nil, nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token returned %d, want 401", rec.Code)
	}

	// Wrong token.
	rec = doJSON(t, h, http.MethodGet, "/v1/products", nil,
		map[string]string{"Authorization": "Bearer wrong"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token returned %d, want 401", rec.Code)
	}

	// Correct token.
	rec = doJSON(t, h, http.MethodGet, "/v1/products", nil,
		map[string]string{"Authorization": "Bearer secret"}, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token returned %d, want 200", rec.Code)
	}
}

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

// mutationRouter mirrors the production wiring: the middleware sits on the
// /api/v1 subrouter, where chi has not yet resolved the full route pattern.
// The rule table therefore has to work from the request path alone.
func mutationRouter(store *fakeStore, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Idempotency(store, nil))
		r.Route("/vaccines", func(r chi.Router) {
			r.Post("/", handler)
			r.Get("/", handler)
			r.Post("/{id}/administer", handler)
			r.Post("/{id}/adjustments", handler)
		})
		r.Route("/adjustments", func(r chi.Router) {
			r.Post("/", handler)
		})
	})
	return r
}

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   time.Duration
		ok     bool
	}{
		{"create vaccine", http.MethodPost, "/api/v1/vaccines", defaultIdempotencyTTL, true},
		{"create vaccine trailing slash", http.MethodPost, "/api/v1/vaccines/", defaultIdempotencyTTL, true},
		{"administer doses", http.MethodPost, "/api/v1/vaccines/42/administer", defaultIdempotencyTTL, true},
		{"record adjustment", http.MethodPost, "/api/v1/vaccines/42/adjustments", defaultIdempotencyTTL, true},
		{"create shipment", http.MethodPost, "/api/v1/shipments", defaultIdempotencyTTL, true},
		{"standalone adjustment", http.MethodPost, "/api/v1/adjustments", defaultIdempotencyTTL, true},
		{"list vaccines", http.MethodGet, "/api/v1/vaccines", 0, false},
		{"dashboard", http.MethodGet, "/api/v1/dashboard/metrics", 0, false},
	}

	for _, tt := range tests {
		ttl, ok := routeTTL(tt.method, tt.path)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v got %v", tt.name, tt.ok, ok)
		}
		if ok && ttl != tt.want {
			t.Fatalf("%s: expected ttl=%v got %v", tt.name, tt.want, ttl)
		}
	}
}

func TestIdempotencyEngagesThroughRouter(t *testing.T) {
	store := newFakeStore()
	var calls int
	router := mutationRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	})

	// A mutation without the key must be rejected before the handler runs.
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/vaccines", strings.NewReader(`{"name":"Fluzone"}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without key got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatalf("handler ran without idempotency key")
	}

	// The same key and body executes once and replays after that.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/vaccines/7/administer", strings.NewReader(`{"count":3}`))
		req.Header.Set("Idempotency-Key", "dose-7")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201 got %d", i, rec.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
	if len(store.data) != 1 {
		t.Fatalf("expected one stored record got %d", len(store.data))
	}

	// Reads stay outside the rule table.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vaccines", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected GET to pass through got %d", rec.Code)
	}
	if calls != 2 {
		t.Fatalf("expected GET to reach handler, calls=%d", calls)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	var calls int
	router := mutationRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":9}}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/adjustments", strings.NewReader(`{"vaccineId":9,"adjustmentAmount":-2,"reason":"damaged"}`))
	req.Header.Set("Idempotency-Key", "adj-9")
	router.ServeHTTP(httptest.NewRecorder(), req)

	replay := httptest.NewRequest(http.MethodPost, "/api/v1/adjustments", strings.NewReader(`{"vaccineId":9,"adjustmentAmount":-2,"reason":"damaged"}`))
	replay.Header.Set("Idempotency-Key", "adj-9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, replay)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected replay status 201 got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content-type header preserved")
	}
	if strings.TrimSpace(rec.Body.String()) != `{"data":{"id":9}}` {
		t.Fatalf("expected stored body got %s", rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
}

func TestIdempotencyDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	router := mutationRouter(store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vaccines/3/adjustments", strings.NewReader(`{"amount":-1,"reason":"damaged"}`))
	req.Header.Set("Idempotency-Key", "adj-3")
	router.ServeHTTP(httptest.NewRecorder(), req)

	reuse := httptest.NewRequest(http.MethodPost, "/api/v1/vaccines/3/adjustments", strings.NewReader(`{"amount":-5,"reason":"damaged"}`))
	reuse.Header.Set("Idempotency-Key", "adj-3")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, reuse)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected error code %s got %s", pkgerrors.CodeIdempotency, payload.Error.Code)
	}
}

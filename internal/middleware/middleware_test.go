package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/splitledger/internal/auth"
	"github.com/josh-kwaku/splitledger/internal/repository"
)

const testSecret = "middleware-secret"

func TestAuth(t *testing.T) {
	userID := uuid.New()
	token, err := auth.GenerateToken(auth.Claims{UserID: userID, Email: "u@test.com"}, testSecret, time.Hour)
	require.NoError(t, err)

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(testSecret)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, userID, seen)
}

type memIdempotencyRepo struct {
	mu      sync.Mutex
	entries map[string]*repository.IdempotencyEntry
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{entries: map[string]*repository.IdempotencyEntry{}}
}

func (m *memIdempotencyRepo) Get(_ context.Context, key string, userID uuid.UUID) (*repository.IdempotencyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key+userID.String()], nil
}

func (m *memIdempotencyRepo) Save(_ context.Context, e *repository.IdempotencyEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Key+e.UserID.String()] = e
	return nil
}

func TestIdempotency(t *testing.T) {
	userID := uuid.New()
	calls := 0
	status := http.StatusCreated
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"success":true}`))
	})
	repo := newMemIdempotencyRepo()
	h := Idempotency(repo)(next)

	do := func(key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(body))
		req = req.WithContext(auth.ContextWithClaims(req.Context(), &auth.Claims{UserID: userID}))
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no key passes through", func(t *testing.T) {
		calls = 0
		do("", `{}`)
		do("", `{}`)
		assert.Equal(t, 2, calls)
	})

	t.Run("replay", func(t *testing.T) {
		calls = 0
		first := do("k1", `{"a":1}`)
		second := do("k1", `{"a":1}`)

		assert.Equal(t, 1, calls)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
	})

	t.Run("different body conflicts", func(t *testing.T) {
		rec := do("k1", `{"a":2}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("server errors are not stored", func(t *testing.T) {
		calls = 0
		status = http.StatusInternalServerError
		do("k2", `{}`)
		status = http.StatusCreated
		rec := do("k2", `{}`)

		assert.Equal(t, 2, calls)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("oversized body is rejected before buffering", func(t *testing.T) {
		calls = 0
		rec := do("k3", strings.Repeat("a", maxRequestBody+1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, calls)
		stored, err := repo.Get(context.Background(), "k3", userID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("oversized key", func(t *testing.T) {
		rec := do(strings.Repeat("x", 300), `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTracing(t *testing.T) {
	var seen string
	h := Tracing(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/groups/{groupID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/groups/"+uuid.NewString(), nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("/groups/{groupID}", http.MethodGet, "418")))
}

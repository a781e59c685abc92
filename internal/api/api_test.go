package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcapi/internal/api"
	"calcapi/internal/logging"
)

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	// состояние хранилища на пробу не влияет
	srv.createTask(t, "something")

	w := srv.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHomePage(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/api/add?a=10&amp;b=2")
	assert.Contains(t, w.Body.String(), "/api/divide")
}

func TestRouteNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, target := range []string{"/nope", "/api/power?a=1&b=2", "/api", "/tasks/a/b"} {
		w := srv.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		env := decodeEnvelope[any](t, w)
		assert.Equal(t, "Endpoint not found", *env.Error, target)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		method string
		target string
	}{
		{method: http.MethodPost, target: "/api/add?a=1&b=2"},
		{method: http.MethodPatch, target: "/tasks/some-id"},
		{method: http.MethodDelete, target: "/stats"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := srv.do(tt.method, tt.target, "")
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			env := decodeEnvelope[any](t, w)
			assert.Equal(t, "Method not allowed", *env.Error)
		})
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("простой запрос к /api", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/add?a=1&b=2", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		srv.handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight к /api", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/divide", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		srv.handler.ServeHTTP(w, req)

		assert.Less(t, w.Code, 300)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})

	t.Run("вне /api заголовков нет", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()
		srv.handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecovererHidesPanicDetails(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(&logs, "info", "text")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(api.RequestLogger(logger))
	r.Use(api.Recoverer(logger))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("secret connection string")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope[any](t, w)
	assert.Equal(t, "Internal server error", *env.Error)
	assert.NotContains(t, w.Body.String(), "secret")

	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "status=500")
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(&logs, "info", "json")
	require.NoError(t, err)

	handler := api.SetupRouter(api.Deps{Logger: logger})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/add?a=2&b=3", nil))
	require.Equal(t, http.StatusOK, w.Code)

	out := logs.String()
	assert.Contains(t, out, `"msg":"computation"`)
	assert.Contains(t, out, `"operation":"add"`)
	assert.Contains(t, out, `"result":5`)
	assert.Contains(t, out, `"msg":"request"`)
	assert.Contains(t, out, `"path":"/api/add"`)
	assert.Contains(t, out, `"status":200`)
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flvvius/hackathon-sisc-2025/backend/internal/setup"
	"github.com/flvvius/hackathon-sisc-2025/backend/internal/storage/pg"
	"github.com/flvvius/hackathon-sisc-2025/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Public: config.Public{
			HttpPort:          8080,
			AllowedOrigins:    []string{"http://localhost:3000"},
			RequestsPerSecond: 10,
			SSEHeartbeat:      25,
			UserCacheTTL:      60,
		},
		Private: config.Private{JwtKey: "test-key"},
	}
	// requests below never reach the database
	deps := setup.Wire(pg.NewFromDB(nil), cfg)
	r, stop := New(deps)
	t.Cleanup(stop)
	t.Cleanup(deps.Bus.Close)
	return r
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/v1/me", "/v1/boards", "/v1/boards/b1", "/v1/boards/b1/events", "/v1/cards/c1"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/boards", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid access token\n", rr.Body.String())
}

func TestBadTokensThrottledPerIP(t *testing.T) {
	r := newTestRouter(t)

	codes := map[int]int{}
	for range 40 {
		req := httptest.NewRequest(http.MethodGet, "/v1/boards", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes[rr.Code]++
	}
	assert.Positive(t, codes[http.StatusUnauthorized])
	assert.Positive(t, codes[http.StatusTooManyRequests])

	// another client keeps its own bucket
	req := httptest.NewRequest(http.MethodGet, "/v1/boards", nil)
	req.RemoteAddr = "198.51.100.8:4000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/boards", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", rr.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/boards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "kanban_event_subscribers")
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

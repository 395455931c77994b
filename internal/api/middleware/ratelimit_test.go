package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirotalab/cms-server/internal/config"
)

func limitedRequest(h http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRateLimitBurstExhaustion(t *testing.T) {
	h := RateLimit(config.RateLimitConfig{PerMinute: 60, Burst: 2})(okHandler())

	require.Equal(t, http.StatusOK, limitedRequest(h, "/content/news", "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, limitedRequest(h, "/content/news", "10.0.0.1:1234").Code)

	third := limitedRequest(h, "/content/news", "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	require.Equal(t, "60", third.Header().Get("Retry-After"))

	// Another client has its own bucket.
	require.Equal(t, http.StatusOK, limitedRequest(h, "/content/news", "10.0.0.2:1234").Code)
}

func TestRateLimitExemptsProbes(t *testing.T) {
	h := RateLimit(config.RateLimitConfig{PerMinute: 60, Burst: 1})(okHandler())

	require.Equal(t, http.StatusOK, limitedRequest(h, "/content/news", "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, limitedRequest(h, "/content/news", "10.0.0.1:1234").Code)

	for range 5 {
		require.Equal(t, http.StatusOK, limitedRequest(h, "/healthz", "10.0.0.1:1234").Code)
		require.Equal(t, http.StatusOK, limitedRequest(h, "/readyz", "10.0.0.1:1234").Code)
	}
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	h := RateLimit(config.RateLimitConfig{})(okHandler())
	for range 50 {
		require.Equal(t, http.StatusOK, limitedRequest(h, "/content/news", "10.0.0.1:1234").Code)
	}
}

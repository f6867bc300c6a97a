package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidKey(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	mw := AuthMiddleware(testAPIKey, nil, detector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/rotation", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_InvalidKey(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	mw := AuthMiddleware(testAPIKey, nil, detector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/rotation", nil)
	req.Header.Set(HeaderAPIKey, "wrong-key")
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingKey(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	mw := AuthMiddleware(testAPIKey, nil, detector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_PublicPathsBypass(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	mw := AuthMiddleware(testAPIKey, nil, detector)

	for _, path := range PublicPaths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s should not require auth", path)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	mw := SecurityHeadersMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	mw := RequestSizeLimitMiddleware(16)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, err := r.Body.Read(buf)
		if err != nil && err.Error() == "http: request body too large" {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/purchase", strings.NewReader("tiny"))
		rec := httptest.NewRecorder()
		mw(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/purchase", strings.NewReader(strings.Repeat("x", 64)))
		rec := httptest.NewRecorder()
		mw(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestSuspiciousActivityDetector_RequestLimit(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	for i := 0; i < maxRequestsPerWindow; i++ {
		require.True(t, detector.RecordRequest("10.0.0.1"), "request %d should be allowed", i)
	}
	assert.False(t, detector.RecordRequest("10.0.0.1"))

	// Other IPs are tracked independently.
	assert.True(t, detector.RecordRequest("10.0.0.2"))
}

func TestRateLimitMiddleware_BlocksAfterLimit(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	mw := RateLimitMiddleware(nil, detector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
	req.RemoteAddr = "10.0.0.5:1234"

	var lastCode int
	for i := 0; i <= maxRequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestExtractIP(t *testing.T) {
	t.Run("remote addr without proxy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.10:5555"
		req.Header.Set(HeaderForwardedFor, "1.2.3.4")

		// Forwarded header ignored unless the peer is a trusted proxy.
		assert.Equal(t, "192.168.1.10", extractIP(req, nil))
	})

	t.Run("forwarded header from trusted proxy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.10:5555"
		req.Header.Set(HeaderForwardedFor, "1.2.3.4, 5.6.7.8")

		// Rightmost entry is the one the trusted proxy observed.
		assert.Equal(t, "5.6.7.8", extractIP(req, []string{"192.168.1.10"}))
	})
}

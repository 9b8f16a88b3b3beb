package http

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"direct peer", "203.0.113.7:5000", nil, "203.0.113.7"},
		{"untrusted peer ignores forwarded", "203.0.113.7:5000", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"trusted proxy forwarded", "10.0.0.2:5000", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.3"}, "198.51.100.1"},
		{"trusted proxy real ip", "127.0.0.1:5000", map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
		{"trusted proxy bad header", "192.168.1.1:5000", map[string]string{"X-Forwarded-For": "not-an-ip"}, "192.168.1.1"},
		{"no port", "203.0.113.7", nil, "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractClientIP(req))
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		agent  string
		want   string
	}{
		{"plain", http.MethodGet, "/api/expenses", "", ""},
		{"dotenv probe", http.MethodGet, "/.env", "", "pattern .env"},
		{"traversal in query", http.MethodGet, "/ui/ledger?period=../etc", "", "pattern ../"},
		{"scanner agent", http.MethodGet, "/", "sqlmap/1.7", "agent sqlmap"},
		{"trace method", "TRACE", "/", "", "method TRACE"},
		{"long url", http.MethodGet, "/?q=" + strings.Repeat("a", 2100), "", "long url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.agent != "" {
				req.Header.Set("User-Agent", tt.agent)
			}
			assert.Equal(t, tt.want, detectSuspiciousRequest(req))
		})
	}
}

func TestApplySecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	applySecurityHeaders(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "https://unpkg.com")
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	rr = httptest.NewRecorder()
	applySecurityHeaders(rr, req)
	assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiterWindow(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.stop()

	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.True(t, rl.allow("b"))
}

func TestRateLimiterSlowClientNeverLimited(t *testing.T) {
	rl := newRateLimiter(60)
	defer rl.stop()
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 1; i <= 100; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d at %s", i, now.Format("15:04:05"))
		now = now.Add(30 * time.Second)
	}
}

func TestRateLimiterWindowReopens(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.stop()
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	now = now.Add(20 * time.Second)
	assert.True(t, rl.allow("a"))
	now = now.Add(20 * time.Second)
	assert.False(t, rl.allow("a"))

	// Busy traffic inside the window does not extend it.
	now = now.Add(20 * time.Second)
	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
}

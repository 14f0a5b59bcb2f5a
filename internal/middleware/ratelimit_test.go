package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "cada IP tem o seu balde")
}

func TestRateLimiter_Recarrega(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()

	rl.Allow("10.0.0.1")
	rl.cleanup(time.Now().Add(2 * limiterIdleThreshold))
	assert.Empty(t, rl.clients)
}

func TestNewRateLimiter_JanelaPorRequisicao(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute)
	defer rl.Stop()

	assert.Equal(t, rate.Every(time.Second), rl.limit)
	assert.Equal(t, 60, rl.burst)

	bloqueado := NewRateLimiter(0, time.Minute)
	defer bloqueado.Stop()
	assert.False(t, bloqueado.Allow("10.0.0.1"))
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()
	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/folha/resumo", nil)
	req.RemoteAddr = "192.168.0.10:5555"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	health := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	health.RemoteAddr = req.RemoteAddr
	w = httptest.NewRecorder()
	h.ServeHTTP(w, health)
	assert.Equal(t, http.StatusOK, w.Code)
}

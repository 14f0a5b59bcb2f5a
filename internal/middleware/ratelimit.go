package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleThreshold = 1 * time.Hour
	cleanupInterval      = 30 * time.Minute
)

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter mantém um *rate.Limiter por IP.
type RateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	clients     map[string]*limiterEntry
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter libera `requisicoes` por `janela`, com rajada do mesmo tamanho.
func NewRateLimiter(requisicoes int, janela time.Duration) *RateLimiter {
	limit := rate.Limit(0)
	if requisicoes > 0 && janela > 0 {
		limit = rate.Every(janela / time.Duration(requisicoes))
	}
	rl := &RateLimiter{
		limit:       limit,
		burst:       requisicoes,
		clients:     make(map[string]*limiterEntry),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup descarta limiters sem acesso recente.
func (r *RateLimiter) cleanup(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, entry := range r.clients {
		if now.Sub(entry.lastAccess) > limiterIdleThreshold {
			delete(r.clients, ip)
		}
	}
}

// Stop encerra a limpeza periódica. Pode ser chamado mais de uma vez.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

func (r *RateLimiter) getLimiter(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[ip] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter
}

func (r *RateLimiter) Allow(ip string) bool {
	return r.getLimiter(ip).Allow()
}

// RateLimit responde 429 quando o IP esgota o limite. /healthz fica de fora.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				http.Error(w, "muitas requisições, tente novamente em instantes", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

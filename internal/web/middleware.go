package web

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxConfirmed contextKey = "confirmed"
)

// securityHeadersMiddleware adds standard security headers to all responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		next.ServeHTTP(w, r)
	})
}

// ---- Rate Limiter (Token Bucket per IP) ----

// rateLimiter implements a per-IP token bucket rate limiter. Idle
// buckets are swept until close is called.
type rateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	rate     float64 // tokens per second
	capacity int     // max burst

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type tokenBucket struct {
	tokens   float64
	lastTime time.Time
}

const (
	sweepInterval = 5 * time.Minute
	bucketIdle    = 10 * time.Minute
)

func newRateLimiter(ratePerSec float64, burst int) *rateLimiter {
	rl := &rateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     ratePerSec,
		capacity: burst,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go rl.sweep(sweepInterval)
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &tokenBucket{tokens: float64(rl.capacity), lastTime: now}
		rl.buckets[ip] = b
	}

	b.tokens = min(b.tokens+now.Sub(b.lastTime).Seconds()*rl.rate, float64(rl.capacity))
	b.lastTime = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle for longer than bucketIdle.
func (rl *rateLimiter) sweep(every time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastTime) > bucketIdle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// close stops the sweeper and waits for it to exit. Safe to call twice.
func (rl *rateLimiter) close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

// ---- Middleware ----

// requestIDMiddleware adds a unique X-Request-ID header to each request.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), ctxRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// rateLimitMiddleware enforces per-IP rate limiting.
func rateLimitMiddleware(rl *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		s.log.Info("request",
			zap.String("request_id", requestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.status),
			zap.Duration("duration", time.Since(start).Round(time.Millisecond)),
			zap.String("client_ip", clientIP(r)),
		)
	})
}

// statusRecorder wraps http.ResponseWriter to capture status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// clientIP extracts the client IP from the request.
// Only uses r.RemoteAddr to prevent spoofing via X-Forwarded-For headers.
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"andhrawala/internal/models"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket, switching to a per-user bucket
// once the auth gate has resolved an identity.
type RateLimiter struct {
	mu           sync.Mutex
	ipVisitors   map[string]*visitor
	userVisitors map[string]*visitor
	rps          rate.Limit
	burst        int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		ipVisitors:   make(map[string]*visitor),
		userVisitors: make(map[string]*visitor),
		rps:          rate.Limit(rps),
		burst:        burst,
	}
	go rl.cleanupVisitors()
	return rl
}

func (rl *RateLimiter) getLimiter(key string, isUser bool) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	visitors := rl.ipVisitors
	if isUser {
		visitors = rl.userVisitors
	}

	v, exists := visitors[key]
	if !exists {
		v = &visitor{rate.NewLimiter(rl.rps, rl.burst), time.Now()}
		visitors[key] = v
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for ip, v := range rl.ipVisitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.ipVisitors, ip)
			}
		}
		for user, v := range rl.userVisitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.userVisitors, user)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var limiter *rate.Limiter

		if session, ok := r.Context().Value(SessionKey).(models.Session); ok {
			limiter = rl.getLimiter(session.Username, true)
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			limiter = rl.getLimiter(ip, false)
		}

		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

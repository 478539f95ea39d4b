package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JonMunkholm/companysearch/internal/core"
)

// ErrRateLimited is reported to clients that exceed their request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// staleAfter is how long an idle client's limiter is kept.
const staleAfter = 10 * time.Minute

// RateLimitConfig holds configuration for the rate limiter middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained per-client rate.
	RequestsPerMinute int
	// Burst is the maximum number of requests allowed at once.
	Burst int
}

// clientLimiter tracks a per-client rate limiter and when it was last seen.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per client IP.
// Stale entries are swept while serving requests, at most once per staleAfter.
type limiterSet struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	every     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func (s *limiterSet) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > staleAfter {
		for key, cl := range s.clients {
			if now.Sub(cl.lastSeen) > staleAfter {
				delete(s.clients, key)
			}
		}
		s.lastSweep = now
	}

	if cl, ok := s.clients[ip]; ok {
		cl.lastSeen = now
		return cl.limiter
	}
	limiter := rate.NewLimiter(s.every, s.burst)
	s.clients[ip] = &clientLimiter{limiter: limiter, lastSeen: now}
	return limiter
}

// RateLimit returns an HTTP middleware that enforces a per-client token-bucket
// rate limit keyed on RemoteAddr. Run it after TrustedRealIP so proxied
// clients are told apart. Rejected requests get 429 with a Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	set := &limiterSet{
		clients: make(map[string]*clientLimiter),
		every:   rate.Every(time.Minute / time.Duration(max(cfg.RequestsPerMinute, 1))),
		burst:   max(cfg.Burst, 1),
		now:     time.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := set.get(clientIP(r))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				writeTooManyRequests(w, 0)
				return
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				writeTooManyRequests(w, int(delay.Seconds())+1)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(set.burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter, retryAfterSecs int) {
	if retryAfterSecs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
	}
	msg := core.MapError(ErrRateLimited)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   msg.Message,
		"message": msg.Message,
		"action":  msg.Action,
		"code":    msg.Code,
	})
}

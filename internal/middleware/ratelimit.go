package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/HammerMeetNail/fitrank/internal/logging"
)

// KeyFunc picks the bucket a request is counted against. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// RateLimiter enforces a fixed-window request budget per key. Counters live in
// Redis so limits hold across replicas. Without Redis, or while Redis is
// failing, each process falls back to an in-memory token bucket with the same
// average rate.
type RateLimiter struct {
	redis   *redis.Client
	limit   int
	window  time.Duration
	prefix  string
	keyFunc KeyFunc
	logger  *logging.Logger

	mu    sync.Mutex
	local map[string]*localBucket
	now   func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration, prefix string, keyFunc KeyFunc) *RateLimiter {
	if keyFunc == nil {
		keyFunc = ClientIPKey(0)
	}
	if limit < 1 {
		limit = 1
	}
	return &RateLimiter{
		redis:   client,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		keyFunc: keyFunc,
		logger:  logging.Default,
		local:   make(map[string]*localBucket),
		now:     time.Now,
	}
}

// WithLogger sets the logger used to report Redis failures.
func (rl *RateLimiter) WithLogger(logger *logging.Logger) *RateLimiter {
	if logger != nil {
		rl.logger = logger
	}
	return rl
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, reset := rl.allow(r.Context(), key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int(reset.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, int, time.Time) {
	if rl.redis != nil {
		allowed, remaining, reset, err := rl.allowRedis(ctx, key)
		if err == nil {
			return allowed, remaining, reset
		}
		rl.logger.Warn("Rate limiter falling back to local bucket", logging.Fields{
			"error": err.Error(),
		})
	}
	return rl.allowLocal(key)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.window)
	reset := windowStart.Add(rl.window)
	redisKey := rl.prefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, reset, err
	}

	count := int(incr.Val())
	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.limit, remaining, reset, nil
}

func (rl *RateLimiter) allowLocal(key string) (bool, int, time.Time) {
	now := rl.now()

	rl.mu.Lock()
	b, ok := rl.local[key]
	if !ok {
		every := rl.window / time.Duration(rl.limit)
		b = &localBucket{limiter: rate.NewLimiter(rate.Every(every), rl.limit)}
		rl.local[key] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	allowed := b.limiter.AllowN(now, 1)
	remaining := int(b.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, now.Add(rl.window)
}

// Prune drops local buckets idle for longer than maxIdle.
func (rl *RateLimiter) Prune(maxIdle time.Duration) int {
	cutoff := rl.now().Add(-maxIdle)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for key, b := range rl.local {
		if b.lastSeen.Before(cutoff) {
			delete(rl.local, key)
			removed++
		}
	}
	return removed
}

// RunPruner prunes idle local buckets every window until ctx is done.
func (rl *RateLimiter) RunPruner(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune(3 * rl.window)
		}
	}
}

// GetClientIP returns the originating client address as reported by the
// request, preferring the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address. The headers are client-controlled, so this is
// for logging; use ClientIPKey for limiting.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return remoteIP(r)
}

// ClientIPKey keys requests by client address. With trustedHops == 0 the
// forwarding headers are ignored and the connection's remote address is used.
// Behind trustedHops proxies the key is the X-Forwarded-For entry trustedHops
// from the right, the address the outermost trusted proxy saw; entries left of
// it were supplied by the client.
func ClientIPKey(trustedHops int) KeyFunc {
	return func(r *http.Request) string {
		if trustedHops > 0 {
			if hops := forwardedHops(r); len(hops) > 0 {
				return hops[max(len(hops)-trustedHops, 0)]
			}
		}
		return remoteIP(r)
	}
}

func forwardedHops(r *http.Request) []string {
	var hops []string
	for _, line := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(line, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

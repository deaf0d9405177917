package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
)

const (
	defaultRequestsPerMinute = 30
	defaultBurst             = 5
	clientIdleTTL            = 10 * time.Minute
	sweepEvery               = 256
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit is a per-client token bucket keyed by remote IP.
type RateLimit struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	perMin  int
	calls   int
	now     func() time.Time
}

// NewRateLimit allows requestsPerMin requests per minute per client with
// the given burst.
func NewRateLimit(requestsPerMin, burst int) *RateLimit {
	if requestsPerMin <= 0 {
		requestsPerMin = defaultRequestsPerMinute
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimit{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(requestsPerMin) / 60),
		burst:   burst,
		perMin:  requestsPerMin,
		now:     time.Now,
	}
}

// Limit rejects requests over the client's budget with 429.
func (rl *RateLimit) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := rl.reserve(clientKey(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMin))

		if delay := res.DelayFrom(rl.now()); delay > 0 {
			res.CancelAt(rl.now())
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			response.Error(w, http.StatusTooManyRequests, "Too many requests, please slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimit) reserve(key string) *rate.Reservation {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.calls++
	if rl.calls%sweepEvery == 0 {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > clientIdleTTL {
				delete(rl.clients, k)
			}
		}
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.ReserveN(now, 1)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

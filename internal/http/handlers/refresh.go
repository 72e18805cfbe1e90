package handlers

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RefreshLimiter admits manual refreshes per target with a token bucket.
// A nil limiter or a zero rate admits everything.
type RefreshLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func NewRefreshLimiter(perSecond float64, burst int) *RefreshLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RefreshLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow takes a token for target. When none is available it reports how long
// until the next one.
func (l *RefreshLimiter) Allow(target string) (bool, time.Duration) {
	if l == nil || l.limit <= 0 {
		return true, 0
	}
	l.mu.Lock()
	lim, ok := l.buckets[target]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.buckets[target] = lim
	}
	l.mu.Unlock()

	now := l.now()
	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

package metrics

import (
	"sync"
	"time"
)

type fetchStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
	lastErrorKind   string
}

type pollerStats struct {
	cycles int
	errors int
}

// Recorder captures in-memory metrics about upstream fetches, pollers and
// manual refreshes, mirroring them into OpenTelemetry when configured.
type Recorder struct {
	mu       sync.Mutex
	fetches  map[string]*fetchStats
	pollers  map[string]*pollerStats
	refresh  map[string]int
	classify func(error) string
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		fetches: make(map[string]*fetchStats),
		pollers: make(map[string]*pollerStats),
		refresh: make(map[string]int),
		otel:    otel,
	}
}

// WithErrorClassifier sets the function that labels failed fetches by cause.
func (r *Recorder) WithErrorClassifier(fn func(error) string) *Recorder {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	r.classify = fn
	r.mu.Unlock()
	return r
}

func fetchKey(provider, kind string) string {
	return provider + "/" + kind
}

// RecordFetch counts one upstream call for a provider and collection kind.
func (r *Recorder) RecordFetch(provider, kind string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureFetch(fetchKey(provider, kind))
	stats.calls++
	stats.lastCallLatency = duration
	errKind := ""
	if err != nil {
		stats.errors++
		errKind = "error"
		if r.classify != nil {
			if k := r.classify(err); k != "" {
				errKind = k
			}
		}
		stats.lastErrorKind = errKind
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(provider, kind, duration, errKind)
	}
}

// RecordRateLimit tracks that an upstream answered 429 and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider, kind string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureFetch(fetchKey(provider, kind))
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, kind, retryAfter)
	}
}

// Snapshot is a copy of the fetch stats for one provider and kind.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
	LastErrorKind   string
}

func (r *Recorder) Snapshot(provider, kind string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.fetches[fetchKey(provider, kind)]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
		LastErrorKind:   stats.lastErrorKind,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks completed poller fetches by poller name.
func (r *Recorder) RecordPollerCycle(poller string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.pollers[poller]
	if !ok {
		stats = &pollerStats{}
		r.pollers[poller] = stats
	}
	stats.cycles++
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPoller(poller, duration, err)
	}
}

// PollerCycles returns completed cycles and failed cycles for a poller.
func (r *Recorder) PollerCycles(poller string) (cycles, errors int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.pollers[poller]; ok {
		return stats.cycles, stats.errors
	}
	return 0, 0
}

// RecordRefresh tracks manual refresh requests and whether they were admitted.
func (r *Recorder) RecordRefresh(target string, allowed bool) {
	if r == nil {
		return
	}
	if allowed {
		r.mu.Lock()
		r.refresh[target]++
		r.mu.Unlock()
	}
	if r.otel != nil {
		r.otel.recordRefresh(target, allowed)
	}
}

// Refreshes returns the number of admitted manual refreshes for target.
func (r *Recorder) Refreshes(target string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refresh[target]
}

// RecordBreakerState tracks circuit breaker transitions.
func (r *Recorder) RecordBreakerState(name, state string) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordBreakerState(name, state)
}

// caller holds r.mu
func (r *Recorder) ensureFetch(key string) *fetchStats {
	stats, ok := r.fetches[key]
	if !ok {
		stats = &fetchStats{}
		r.fetches[key] = stats
	}
	return stats
}

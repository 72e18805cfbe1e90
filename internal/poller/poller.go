package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/logging"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
)

const defaultInterval = 5 * time.Second

// ErrNotRunning is returned by Refresh when the poller is not started.
var ErrNotRunning = errors.New("poller not running")

// FetchFunc loads one complete snapshot.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// State is what subscribers observe. A failed fetch keeps the previous Data
// and sets Err; a successful one replaces Data and clears Err.
type State[T any] struct {
	Data      T
	Loading   bool
	Err       error
	UpdatedAt time.Time
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Options configures a Poller. Zero values pick defaults.
type Options struct {
	Interval time.Duration
	// Timeout bounds each fetch; zero leaves it to the fetch function.
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Poller runs fetch on a fixed interval and keeps the latest result.
//
// Every fetch runs on its own goroutine and the timer is re-armed as soon as a
// fetch is issued, so slow fetches may overlap. Results are applied in arrival
// order. Stop bumps a generation counter: results and callbacks belonging to
// an earlier generation are dropped.
type Poller[T any] struct {
	name     string
	fetch    FetchFunc[T]
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	mu        sync.Mutex
	state     State[T]
	hasResult bool
	gen       uint64
	running   bool
	timer     *time.Timer
	runCtx    context.Context
	cancel    context.CancelFunc
	subs      map[uint64]func(State[T])
	nextSub   uint64
	inflight  sync.WaitGroup

	// emitMu serializes state application and subscriber callbacks.
	emitMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// New constructs a Poller with sane defaults.
func New[T any](name string, fetch func(ctx context.Context) (T, error), opts Options) *Poller[T] {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	return &Poller[T]{
		name:     name,
		fetch:    fetch,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		now:      time.Now,
		subs:     make(map[uint64]func(State[T])),
	}
}

func (p *Poller[T]) Name() string {
	return p.name
}

func (p *Poller[T]) Interval() time.Duration {
	return p.interval
}

// Start issues a fetch immediately and then one every interval until Stop is
// called or ctx ends. Starting a running poller is a no-op.
func (p *Poller[T]) Start(ctx context.Context) {
	p.emitMu.Lock()
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		p.emitMu.Unlock()
		return
	}
	p.running = true
	p.gen++
	gen := p.gen
	p.runCtx, p.cancel = context.WithCancel(ctx)
	runCtx := p.runCtx
	if !p.hasResult {
		p.state.Loading = true
	}
	snapshot, subs := p.state, p.subscribers()
	p.mu.Unlock()

	p.notify(subs, snapshot)
	p.emitMu.Unlock()

	context.AfterFunc(runCtx, func() { p.halt(gen) })
	p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	p.tick(gen)
}

// Stop halts the schedule and waits for any in-progress emission and for
// in-flight fetches, which are cancelled. Both waits end when ctx does. Once
// Stop returns nil no subscriber is called again for fetches issued before the
// stop. Subscribers must not call Stop.
func (p *Poller[T]) Stop(ctx context.Context) error {
	halted := p.halt(0)

	done := make(chan struct{})
	go func() {
		// barrier: waits out an emission that is already running
		p.emitMu.Lock()
		p.emitMu.Unlock()
		p.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if halted {
		p.logInfo("poller stopped")
	}
	return nil
}

// halt stops the schedule if it is still on generation gen (0 matches any)
// and reports whether it did.
func (p *Poller[T]) halt(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || (gen != 0 && p.gen != gen) {
		return false
	}
	p.running = false
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
	}
	return true
}

// Refresh issues an out-of-band fetch. The regular schedule is untouched.
func (p *Poller[T]) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	gen, runCtx := p.gen, p.runCtx
	p.inflight.Add(1)
	p.mu.Unlock()

	go p.run(runCtx, gen)
	return nil
}

// State returns the latest snapshot.
func (p *Poller[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscription is returned by Subscribe.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel removes the callback. A callback already being delivered may still complete.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Subscribe registers fn to be called with every state transition, in order.
func (p *Poller[T]) Subscribe(fn func(State[T])) *Subscription {
	p.mu.Lock()
	p.nextSub++
	id := p.nextSub
	p.subs[id] = fn
	p.mu.Unlock()

	return &Subscription{cancel: func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}}
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller[T]) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

func (p *Poller[T]) tick(gen uint64) {
	p.mu.Lock()
	if !p.running || p.gen != gen {
		p.mu.Unlock()
		return
	}
	p.timer = time.AfterFunc(p.interval, func() { p.tick(gen) })
	runCtx := p.runCtx
	p.inflight.Add(1)
	p.mu.Unlock()

	go p.run(runCtx, gen)
}

func (p *Poller[T]) run(ctx context.Context, gen uint64) {
	defer p.inflight.Done()
	p.fetchOnce(ctx, gen)
}

func (p *Poller[T]) fetchOnce(ctx context.Context, gen uint64) {
	start := p.now()
	p.recordAttempt(start)

	data, err := p.safeFetch(ctx)
	if ctx.Err() != nil {
		// stopped while fetching
		return
	}
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(p.name, elapsed, err)

	if err != nil {
		p.logError("poller fetch failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		p.recordFailure(err, start)
	} else {
		p.recordSuccess(start)
	}
	p.apply(gen, data, err)
}

func (p *Poller[T]) safeFetch(ctx context.Context) (data T, err error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			var zero T
			data, err = zero, fmt.Errorf("%s: fetch panicked: %v", p.name, r)
		}
	}()
	if p.fetch == nil {
		return data, fmt.Errorf("%s: no fetch function", p.name)
	}
	return p.fetch(ctx)
}

func (p *Poller[T]) apply(gen uint64, data T, err error) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return
	}
	p.state.Loading = false
	p.hasResult = true
	if err != nil {
		p.state.Err = err
	} else {
		p.state.Data = data
		p.state.Err = nil
		p.state.UpdatedAt = p.now()
	}
	snapshot, subs := p.state, p.subscribers()
	p.mu.Unlock()

	p.notify(subs, snapshot)
}

// caller holds p.mu
func (p *Poller[T]) subscribers() []func(State[T]) {
	ids := make([]uint64, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(State[T]), 0, len(ids))
	for _, id := range ids {
		out = append(out, p.subs[id])
	}
	return out
}

// caller holds p.emitMu
func (p *Poller[T]) notify(subs []func(State[T]), s State[T]) {
	for _, fn := range subs {
		p.deliver(fn, s)
	}
}

func (p *Poller[T]) deliver(fn func(State[T]), s State[T]) {
	defer func() {
		if r := recover(); r != nil {
			p.logError("poller subscriber panicked", fmt.Errorf("%v", r))
		}
	}()
	fn(s)
}

func (p *Poller[T]) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, append(args, slog.String(logging.FieldPoller, p.name))...)
	}
}

func (p *Poller[T]) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, slog.String(logging.FieldPoller, p.name), "error", err)...)
	}
}

func (p *Poller[T]) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller[T]) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller[T]) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

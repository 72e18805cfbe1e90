package tables

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
	"github.com/preston-bernstein/dashboard-service/internal/store"
)

// Page is the view model of one table: rows plus the poller's loading and error flags.
type Page struct {
	Kind      providers.Kind `json:"kind"`
	Rows      any            `json:"rows"`
	Count     int            `json:"count"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

// Viewer is the kind-agnostic face of a Table used by handlers and the server.
type Viewer interface {
	Kind() providers.Kind
	Page() Page
	Record(id string) (any, bool)
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// Table keeps the latest snapshot of one collection, fed by its own poller.
type Table[T store.Keyed] struct {
	kind   providers.Kind
	poller *poller.Poller[[]T]
	store  *store.MemoryStore[T]

	// guards current together with store replacement so a Page is never torn
	mu      sync.RWMutex
	current poller.State[[]T]
}

var _ Viewer = (*Table[store.Keyed])(nil)

// New builds a table that polls fetch and replaces its snapshot on every success.
func New[T store.Keyed](kind providers.Kind, fetch func(ctx context.Context) ([]T, error), opts poller.Options) *Table[T] {
	t := &Table[T]{
		kind:   kind,
		poller: poller.New(string(kind), fetch, opts),
		store:  store.NewMemoryStore[T](),
	}
	t.current.Loading = true
	t.poller.Subscribe(t.apply)
	return t
}

func (t *Table[T]) apply(s poller.State[[]T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !s.Loading && s.Err == nil {
		t.store.Replace(s.Data)
	}
	s.Data = nil
	t.current = s
}

func (t *Table[T]) Kind() providers.Kind {
	return t.kind
}

// Items returns the current snapshot in upstream order.
func (t *Table[T]) Items() []T {
	return t.store.List()
}

func (t *Table[T]) Page() Page {
	t.mu.RLock()
	state := t.current
	rows := t.store.List()
	t.mu.RUnlock()
	page := Page{
		Kind:    t.kind,
		Rows:    rows,
		Count:   len(rows),
		Loading: state.Loading,
	}
	if state.Err != nil {
		page.Error = state.Err.Error()
	}
	if !state.UpdatedAt.IsZero() {
		at := state.UpdatedAt.UTC()
		page.UpdatedAt = &at
	}
	return page
}

func (t *Table[T]) Record(id string) (any, bool) {
	return t.store.Get(id)
}

func (t *Table[T]) Start(ctx context.Context) {
	t.poller.Start(ctx)
}

func (t *Table[T]) Stop(ctx context.Context) error {
	return t.poller.Stop(ctx)
}

func (t *Table[T]) Refresh(ctx context.Context) error {
	return t.poller.Refresh(ctx)
}

func (t *Table[T]) Status() poller.Status {
	return t.poller.Status()
}

// Subscribe forwards poller transitions, e.g. to recompute derived views.
func (t *Table[T]) Subscribe(fn func(poller.State[[]T])) *poller.Subscription {
	return t.poller.Subscribe(fn)
}

package tables

import (
	"context"
	"errors"

	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

// Registry indexes tables by collection kind, keeping registration order.
type Registry struct {
	order  []providers.Kind
	tables map[providers.Kind]Viewer
}

func NewRegistry(viewers ...Viewer) *Registry {
	r := &Registry{tables: make(map[providers.Kind]Viewer, len(viewers))}
	for _, v := range viewers {
		if v == nil {
			continue
		}
		if _, dup := r.tables[v.Kind()]; !dup {
			r.order = append(r.order, v.Kind())
		}
		r.tables[v.Kind()] = v
	}
	return r
}

func (r *Registry) Get(kind providers.Kind) (Viewer, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.tables[kind]
	return v, ok
}

// All returns the tables in registration order.
func (r *Registry) All() []Viewer {
	if r == nil {
		return nil
	}
	out := make([]Viewer, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.tables[k])
	}
	return out
}

func (r *Registry) StartAll(ctx context.Context) {
	for _, v := range r.All() {
		v.Start(ctx)
	}
}

// StopAll stops every table and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	var errs []error
	for _, v := range r.All() {
		if err := v.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/app/tables"
	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
	"github.com/preston-bernstein/dashboard-service/internal/store"
)

// StartedTable builds a table over a static snapshot, starts it and waits for
// the first result. The table is stopped when the test ends.
func StartedTable[T store.Keyed](t *testing.T, kind providers.Kind, items []T) *tables.Table[T] {
	t.Helper()
	table := tables.New(kind, func(context.Context) ([]T, error) {
		return items, nil
	}, poller.Options{Interval: time.Hour})
	table.Start(context.Background())
	t.Cleanup(func() { _ = table.Stop(context.Background()) })
	WaitFor(t, "table "+string(kind), func() bool { return !table.Page().Loading })
	return table
}

// WaitFor polls cond until it holds or a second passes.
func WaitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

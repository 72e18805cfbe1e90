package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFetchOrdersIsDeterministic(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 34, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	first, err := p.FetchOrders(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	p.now = func() time.Time { return fixed.Add(10 * time.Minute) }
	second, _ := p.FetchOrders(context.Background())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical polls within the hour (-first +second):\n%s", diff)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 orders, got %d", len(first))
	}
	if !first[0].CreatedAt.Before(first[len(first)-1].CreatedAt) {
		t.Fatalf("expected orders oldest first")
	}
	if first[3].CreatedAt != fixed.Truncate(time.Hour).Add(-time.Hour) {
		t.Fatalf("unexpected last order timestamp %s", first[3].CreatedAt)
	}
}

func TestFetchDashboardMatchesCollections(t *testing.T) {
	p := New()
	d, err := p.FetchDashboard(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(d.Orders) != 4 || len(d.Payments) != 3 || len(d.Notifications) != 3 || len(d.Users) != 3 {
		t.Fatalf("unexpected dashboard sizes %d/%d/%d/%d", len(d.Orders), len(d.Payments), len(d.Notifications), len(d.Users))
	}
	if p.Name() != ProviderName || p.Health(context.Background()) != nil {
		t.Fatalf("expected healthy fixture provider")
	}
}

func TestFetchProductsIncludesOutOfStock(t *testing.T) {
	got, _ := New().FetchProducts(context.Background())
	var out int
	for _, p := range got {
		if p.Stock == 0 {
			out++
		}
	}
	if out != 1 {
		t.Fatalf("expected one out-of-stock product, got %d", out)
	}
}

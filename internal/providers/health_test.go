package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitHealthyRetriesUntilHealthy(t *testing.T) {
	inner := &stubSource{healthErr: func(call int32) error {
		if call < 3 {
			return errors.New("starting")
		}
		return nil
	}}
	err := WaitHealthy(context.Background(), inner, WaitConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsed:      time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("expected healthy after retries, got %v", err)
	}
	if inner.health.Load() != 3 {
		t.Fatalf("expected 3 probes, got %d", inner.health.Load())
	}
}

func TestWaitHealthyGivesUpWhenContextEnds(t *testing.T) {
	down := errors.New("down")
	inner := &stubSource{healthErr: func(int32) error { return down }}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := WaitHealthy(ctx, inner, WaitConfig{InitialInterval: time.Millisecond}, nil)
	if err == nil {
		t.Fatalf("expected error when upstream never recovers")
	}
}

func TestWaitHealthyNilChecker(t *testing.T) {
	if err := WaitHealthy(context.Background(), nil, WaitConfig{}, nil); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

package tx_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"exodus/internal/platform/tx"
)

func TestSerialManagerDoesNotInterleave(t *testing.T) {
	t.Parallel()
	m := &tx.SerialManager{}
	inside := 0
	maxInside := 0
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Within(context.Background(), func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	if maxInside != 1 {
		t.Fatalf("expected at most one concurrent boundary, got %d", maxInside)
	}
}

func TestSerialManagerHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	m := &tx.SerialManager{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := m.Within(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected cancelled context to skip fn, err=%v called=%t", err, called)
	}
}

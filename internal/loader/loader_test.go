package loader

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type collector struct {
	mu  sync.Mutex
	got []string
}

func (c *collector) add(s string) {
	c.mu.Lock()
	c.got = append(c.got, s)
	c.mu.Unlock()
}

func (c *collector) values() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.got...)
}

func TestInit_DeliversOnce(t *testing.T) {
	var calls atomic.Int32
	var c collector
	l := New(func(ctx context.Context, q string) string {
		calls.Add(1)
		return "r:" + q
	}, c.add)

	l.Init("a")
	l.Wait()
	if got := c.values(); len(got) != 1 || got[0] != "r:a" {
		t.Fatalf("unexpected deliveries: %v", got)
	}

	// same args: cached result is redelivered without loading again
	l.Init("a")
	l.Wait()
	if calls.Load() != 1 {
		t.Fatalf("expected 1 load, got %d", calls.Load())
	}
	if got := c.values(); len(got) != 2 || got[1] != "r:a" {
		t.Fatalf("expected redelivery, got %v", got)
	}

	// different args start a new load
	l.Init("b")
	l.Wait()
	if calls.Load() != 2 {
		t.Fatalf("expected 2 loads, got %d", calls.Load())
	}
}

func TestRestart_CancelsAndDropsStaleResult(t *testing.T) {
	var c collector
	started := make(chan struct{})
	l := New(func(ctx context.Context, q string) string {
		if q == "slow" {
			close(started)
			<-ctx.Done()
			return "stale"
		}
		return "fresh"
	}, c.add)

	l.Restart("slow")
	<-started
	l.Restart("fast")
	l.Wait()

	got := c.values()
	if len(got) != 1 || got[0] != "fresh" {
		t.Fatalf("expected only fresh result, got %v", got)
	}
}

func TestDeliver_CanRestartForNextPage(t *testing.T) {
	var c collector
	var l *Loader[int, int]
	l = New(func(ctx context.Context, page int) int { return page }, func(page int) {
		c.add(string(rune('0' + page)))
		if page < 3 {
			l.Restart(page + 1)
		}
	})
	l.Restart(1)
	l.Wait()
	got := c.values()
	if len(got) != 3 || got[2] != "3" {
		t.Fatalf("expected three pages, got %v", got)
	}
}

func TestClose_DiscardsRunningLoad(t *testing.T) {
	var c collector
	started := make(chan struct{})
	l := New(func(ctx context.Context, q string) string {
		close(started)
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
		}
		return q
	}, c.add)
	l.Init("x")
	<-started
	l.Close()
	if got := c.values(); len(got) != 0 {
		t.Fatalf("expected no deliveries after Close, got %v", got)
	}
}

package portfolio

import (
	"sync"
	"testing"
	"time"
)

func TestChartFetcherLatestWins(t *testing.T) {
	var f ChartFetcher

	first := f.Begin()
	second := f.Begin()

	var got string
	if f.Deliver(first, func() { got = "first" }) {
		t.Fatal("stale generation should not deliver")
	}
	if !f.Deliver(second, func() { got = "second" }) {
		t.Fatal("latest generation should deliver")
	}
	if got != "second" {
		t.Fatalf("applied result = %q, want %q", got, "second")
	}
}

func TestChartFetcherConcurrent(t *testing.T) {
	var f ChartFetcher
	var mu sync.Mutex
	applied := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		gen := f.Begin()
		wg.Add(1)
		go func(gen uint64) {
			defer wg.Done()
			f.Deliver(gen, func() {
				mu.Lock()
				applied++
				mu.Unlock()
			})
		}(gen)
	}
	wg.Wait()

	// Only the final generation is guaranteed to deliver; earlier ones may
	// race ahead of later Begin calls but never apply after being superseded.
	if applied < 1 {
		t.Fatal("latest generation never delivered")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	calls := 0
	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			mu.Lock()
			calls++
			mu.Unlock()
		})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer still fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0)
	if d.delay != DefaultDebounce {
		t.Fatalf("delay = %v, want %v", d.delay, DefaultDebounce)
	}
}

package portfolio

import (
	"sync"
	"time"
)

// ChartFetcher enforces a latest-request-wins discipline on asynchronous
// chart-data fetches: when the inputs change while a fetch is in flight,
// the superseded result is discarded on arrival instead of racing with the
// newer request.
type ChartFetcher struct {
	mu  sync.Mutex
	gen uint64
}

// Begin registers a new fetch generation, invalidating any in-flight fetch.
// The returned generation is passed to Deliver with the result.
func (f *ChartFetcher) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	return f.gen
}

// Deliver applies a fetch result only when gen is still the latest
// generation. Returns false when the result was stale and discarded.
func (f *ChartFetcher) Deliver(gen uint64, apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return false
	}
	apply()
	return true
}

// DefaultDebounce is the quiet period for search-as-you-type requests.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a function call until a quiet period has elapsed since
// the last trigger, bounding request volume on interactive inputs.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period,
// defaulting to DefaultDebounce when non-positive.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any previously
// scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

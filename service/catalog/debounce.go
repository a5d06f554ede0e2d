package catalog

import (
	"context"
	"sync"
	"time"
)

// SearchDebouncer coalesces rapid query changes (one per keystroke) into at
// most one upstream search per quiet period. A newer query supersedes an
// older one: the pending timer is reset and any in-flight fetch has its
// context cancelled, so stale results never reach the callback.
type SearchDebouncer struct {
	quiet time.Duration
	run   func(ctx context.Context, query string)

	mu       sync.Mutex
	timer    *time.Timer
	inflight context.CancelFunc
	gen      uint64
}

// NewSearchDebouncer wires a debouncer to a fetch function. The fetch runs on
// its own goroutine after the quiet period elapses with no newer input.
func NewSearchDebouncer(quiet time.Duration, run func(ctx context.Context, query string)) *SearchDebouncer {
	if quiet <= 0 {
		quiet = 300 * time.Millisecond
	}
	return &SearchDebouncer{quiet: quiet, run: run}
}

// Update feeds the latest query text. Local filtering needs no debouncing —
// only the upstream fetch goes through here.
func (d *SearchDebouncer) Update(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.fire(gen, query)
	})
}

// Cancel stops any pending or in-flight work (view closed, query cleared).
func (d *SearchDebouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.inflight != nil {
		d.inflight()
		d.inflight = nil
	}
}

func (d *SearchDebouncer) fire(gen uint64, query string) {
	d.mu.Lock()
	if gen != d.gen {
		// A newer Update arrived between the timer firing and now.
		d.mu.Unlock()
		return
	}
	if d.inflight != nil {
		d.inflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.inflight = cancel
	d.mu.Unlock()

	go func() {
		defer cancel()
		d.run(ctx, query)
	}()
}

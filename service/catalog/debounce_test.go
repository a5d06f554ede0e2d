package catalog

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidUpdates(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	done := make(chan struct{}, 1)

	d := NewSearchDebouncer(30*time.Millisecond, func(ctx context.Context, query string) {
		mu.Lock()
		calls = append(calls, query)
		mu.Unlock()
		done <- struct{}{}
	})

	d.Update("t")
	d.Update("th")
	d.Update("thi")
	d.Update("thinkpad")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never fired")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("fetch ran %d times, want 1 (%v)", len(calls), calls)
	}
	if calls[0] != "thinkpad" {
		t.Errorf("fetch query = %q, want the last update", calls[0])
	}
}

func TestDebouncer_SupersedesInflightFetch(t *testing.T) {
	firstStarted := make(chan context.Context, 1)
	release := make(chan struct{})
	secondDone := make(chan string, 1)

	d := NewSearchDebouncer(10*time.Millisecond, func(ctx context.Context, query string) {
		if query == "slow" {
			firstStarted <- ctx
			<-release
			return
		}
		secondDone <- query
	})

	d.Update("slow")
	var firstCtx context.Context
	select {
	case firstCtx = <-firstStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch never started")
	}

	d.Update("fast")
	select {
	case q := <-secondDone:
		if q != "fast" {
			t.Errorf("second fetch query = %q, want fast", q)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second fetch never fired")
	}

	select {
	case <-firstCtx.Done():
	case <-time.After(2 * time.Second):
		t.Error("first fetch context was not cancelled by the newer query")
	}
	close(release)
}

func TestDebouncer_CancelStopsPendingFetch(t *testing.T) {
	fired := make(chan struct{}, 1)
	d := NewSearchDebouncer(20*time.Millisecond, func(ctx context.Context, query string) {
		fired <- struct{}{}
	})

	d.Update("abandoned")
	d.Cancel()

	select {
	case <-fired:
		t.Error("fetch fired after Cancel")
	case <-time.After(100 * time.Millisecond):
	}
}

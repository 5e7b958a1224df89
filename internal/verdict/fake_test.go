package verdict

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/triage/internal/providers"
)

// fakeCompleter records requests and answers through respond.
type fakeCompleter struct {
	respond func(prompt string) (string, error)
	delay   time.Duration

	mu       sync.Mutex
	requests []providers.CompletionRequest

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		m := f.maxInflight.Load()
		if n <= m || f.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.respond == nil {
		return "", nil
	}
	return f.respond(req.Prompt)
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func reply(text string) func(string) (string, error) {
	return func(string) (string, error) { return text, nil }
}

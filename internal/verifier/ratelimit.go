package verifier

import (
	"context"
	"sync"
	"time"
)

// Spacer keeps a minimum gap between consecutive requests. Callers reserve
// their slot under the lock, so concurrent callers queue instead of racing.
type Spacer struct {
	mu    sync.Mutex
	gap   time.Duration
	next  time.Time
	now   func() time.Time
	sleep sleepFunc
}

func NewSpacer(gap time.Duration) *Spacer {
	return &Spacer{gap: gap, now: time.Now, sleep: sleepCtx}
}

// Wait blocks until the caller's slot begins.
func (s *Spacer) Wait(ctx context.Context) error {
	s.mu.Lock()
	now := s.now()
	start := now
	if s.next.After(now) {
		start = s.next
	}
	s.next = start.Add(s.gap)
	s.mu.Unlock()

	return s.sleep(ctx, start.Sub(now))
}

// Budget is a fixed request allowance that refills once per window.
type Budget struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	count   int
	resetAt time.Time
	now     func() time.Time
}

func NewBudget(limit int, window time.Duration) *Budget {
	return newBudgetWithClock(limit, window, time.Now)
}

func newBudgetWithClock(limit int, window time.Duration, now func() time.Time) *Budget {
	return &Budget{limit: limit, window: window, now: now, resetAt: now()}
}

func (b *Budget) refill() {
	if now := b.now(); now.Sub(b.resetAt) > b.window {
		b.count = 0
		b.resetAt = now
	}
}

// TryTake spends one request if the allowance permits it.
func (b *Budget) TryTake() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	if b.count >= b.limit {
		return false
	}
	b.count++
	return true
}

func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	return b.limit - b.count
}

func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	return b.count
}

package verifier

import (
	"context"
	"time"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newTestFetcher(opts ...FetcherOption) *Fetcher {
	opts = append([]FetcherOption{WithTimeout(2 * time.Second), WithRetries(3, time.Millisecond)}, opts...)
	f := NewFetcher(opts...)
	f.sleep = noSleep
	return f
}

func newTestSpacer() *Spacer {
	s := NewSpacer(3 * time.Second)
	s.sleep = noSleep
	return s
}

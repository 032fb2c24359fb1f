package verifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Fetcher performs GET requests with a per-request timeout and
// exponential-backoff retries.
type Fetcher struct {
	client      *resty.Client
	timeout     time.Duration
	maxRetries  int
	baseBackoff time.Duration
	sleep       sleepFunc
	logger      *zap.Logger
}

type FetcherOption func(*Fetcher)

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithRetries(maxRetries int, baseBackoff time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if maxRetries >= 0 {
			f.maxRetries = maxRetries
		}
		if baseBackoff > 0 {
			f.baseBackoff = baseBackoff
		}
	}
}

func WithBearerToken(token string) FetcherOption {
	return func(f *Fetcher) {
		if token != "" {
			f.client.SetAuthToken(token)
		}
	}
}

func WithHeader(key, value string) FetcherOption {
	return func(f *Fetcher) { f.client.SetHeader(key, value) }
}

func WithFetchLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      resty.New().SetHeader("User-Agent", browserUserAgent),
		timeout:     10 * time.Second,
		maxRetries:  3,
		baseBackoff: time.Second,
		sleep:       sleepCtx,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get performs a single attempt. timeout overrides the fetcher default when positive.
func (f *Fetcher) Get(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		timeout = f.timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.client.R().SetContext(reqCtx).Get(url)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrRequestTimeout
		}
		return nil, err
	}
	return &Response{Status: resp.StatusCode(), Body: resp.Body(), Header: resp.Header()}, nil
}

// GetWithRetry retries transport errors, 429 and 5xx responses, sleeping
// base, 2*base, 4*base... between attempts.
func (f *Fetcher) GetWithRetry(ctx context.Context, url string) (*Response, error) {
	var (
		resp *Response
		err  error
	)
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.baseBackoff << (attempt - 1)
			f.logger.Debug("retrying request",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
				return nil, fmt.Errorf("context cancelled during retry: %w", sleepErr)
			}
		}

		resp, err = f.Get(ctx, url, 0)
		if err == nil && !retryableStatus(resp.Status) {
			return resp, nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return resp, err
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

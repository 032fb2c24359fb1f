package verifier

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Verifier struct {
	linkedin LinkedInSource
	github   GitHubSource
	cache    Cache
	group    singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Verifier)

func WithLogger(l *zap.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

func New(linkedin LinkedInSource, github GitHubSource, cache Cache, opts ...Option) *Verifier {
	v := &Verifier{
		linkedin: linkedin,
		github:   github,
		cache:    cache,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify scores the given profiles against keywords. It fails when no
// profile URL is given or the caller's ctx ends first; per-source failures
// are reported in Errors.
func (v *Verifier) Verify(ctx context.Context, req Request) (*VerificationDetails, error) {
	req.LinkedInURL = strings.TrimSpace(req.LinkedInURL)
	req.GitHubURL = strings.TrimSpace(req.GitHubURL)
	if req.LinkedInURL == "" && req.GitHubURL == "" {
		return nil, ErrNoProfileURLs
	}

	key := CacheKey(req)
	if cached, ok := v.lookup(ctx, key); ok {
		v.logger.Debug("returning cached verification", zap.String("key", key))
		return cached, nil
	}

	// The flight outlives any single caller: its result is shared and cached.
	flightCtx := context.WithoutCancel(ctx)
	ch := v.group.DoChan(key, func() (any, error) {
		details := v.run(flightCtx, req)
		if err := v.cache.Set(flightCtx, key, details); err != nil {
			v.logger.Warn("verification cache write failed", zap.Error(err))
		}
		return details, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			v.logger.Debug("verification shared with concurrent caller", zap.String("key", key))
		}
		return res.Val.(*VerificationDetails), nil
	}
}

func (v *Verifier) lookup(ctx context.Context, key string) (*VerificationDetails, bool) {
	cached, ok, err := v.cache.Get(ctx, key)
	if err != nil {
		v.logger.Warn("verification cache read failed", zap.Error(err))
		return nil, false
	}
	return cached, ok
}

func (v *Verifier) run(ctx context.Context, req Request) *VerificationDetails {
	var (
		wg       sync.WaitGroup
		linkedin *LinkedInResult
		github   *GitHubResult
	)

	if req.LinkedInURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := v.linkedin.Verify(ctx, req.LinkedInURL, req.Keywords)
			linkedin = &r
		}()
	}
	if req.GitHubURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := v.github.Verify(ctx, req.GitHubURL, req.Keywords)
			github = &r
		}()
	}
	wg.Wait()

	details := &VerificationDetails{VerifiedAt: v.now().UTC()}
	var liScore, ghScore int
	if linkedin != nil {
		data := linkedin.Data
		details.LinkedInData = &data
		details.Errors = append(details.Errors, linkedin.Errors...)
		liScore = data.MatchScore
	}
	if github != nil {
		data := github.Data
		details.GitHubData = &data
		details.Errors = append(details.Errors, github.Errors...)
		ghScore = data.MatchScore
	}

	sources := SourcesOf(linkedin != nil, github != nil)
	details.OverallScore = OverallScore(sources, liScore, ghScore)

	v.logger.Info("verification finished",
		zap.Stringer("sources", sources),
		zap.Int("score", details.OverallScore),
		zap.Int("errors", len(details.Errors)),
	)
	return details
}

func (v *Verifier) Close() error {
	return v.cache.Close()
}

package verifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const linkedInLimitedProfile = "LinkedIn profile is private or limited"

type LinkedInSource interface {
	Verify(ctx context.Context, profileURL string, keywords []string) LinkedInResult
}

type LinkedInVerifier struct {
	fetcher *Fetcher
	parser  ProfileParser
	spacer  *Spacer
	logger  *zap.Logger
}

func NewLinkedInVerifier(fetcher *Fetcher, parser ProfileParser, spacer *Spacer, logger *zap.Logger) *LinkedInVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkedInVerifier{fetcher: fetcher, parser: parser, spacer: spacer, logger: logger}
}

// Verify never fails: problems turn into a zero score plus an error note.
func (v *LinkedInVerifier) Verify(ctx context.Context, profileURL string, keywords []string) LinkedInResult {
	profile, err := v.fetch(ctx, profileURL)
	if err != nil {
		v.logger.Warn("linkedin verification failed", zap.String("url", profileURL), zap.Error(err))
		return LinkedInResult{
			Data:   LinkedInData{Positions: []Position{}, Skills: []string{}},
			Errors: []string{"Network error - unable to reach LinkedIn: " + err.Error()},
		}
	}

	var errs []string
	if len(profile.Positions) == 0 && len(profile.Skills) == 0 {
		errs = append(errs, linkedInLimitedProfile)
	}

	score := percent(matchRatio(keywords, func(k string) bool {
		for _, p := range profile.Positions {
			if containsFold(p.Title, k) || containsFold(p.Company, k) {
				return true
			}
		}
		for _, s := range profile.Skills {
			if containsFold(s, k) {
				return true
			}
		}
		return false
	}))

	v.logger.Info("linkedin verified",
		zap.String("url", profileURL),
		zap.Int("score", score),
		zap.Int("positions", len(profile.Positions)),
		zap.Int("skills", len(profile.Skills)),
	)

	return LinkedInResult{
		Data: LinkedInData{
			Positions:  profile.Positions,
			Skills:     profile.Skills,
			MatchScore: score,
		},
		Errors: errs,
	}
}

func (v *LinkedInVerifier) fetch(ctx context.Context, profileURL string) (LinkedInProfile, error) {
	if err := v.spacer.Wait(ctx); err != nil {
		return LinkedInProfile{}, err
	}

	resp, err := v.fetcher.GetWithRetry(ctx, profileURL)
	if err != nil {
		return LinkedInProfile{}, err
	}
	if !resp.OK() {
		return LinkedInProfile{}, fmt.Errorf("LinkedIn returned status %d", resp.Status)
	}

	return v.parser.Parse(resp.Body)
}

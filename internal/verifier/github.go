package verifier

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	topRepoCount      = 10
	readmeLimit       = 1000
	recentPushWindow  = 30 * 24 * time.Hour
	recentPushBonus   = 10
	maxActivityBonus  = 0.2
	activityBonusUnit = 100.0
)

var githubUserPattern = regexp.MustCompile(`(?i)github\.com/([\w-]+)`)

type GitHubSource interface {
	Verify(ctx context.Context, profileURL string, keywords []string) GitHubResult
}

type GitHubVerifier struct {
	fetcher       *Fetcher
	budget        *Budget
	apiURL        string
	rawURL        string
	readmeTimeout time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

type GitHubOption func(*GitHubVerifier)

func WithGitHubEndpoints(apiURL, rawURL string) GitHubOption {
	return func(v *GitHubVerifier) {
		if apiURL != "" {
			v.apiURL = strings.TrimRight(apiURL, "/")
		}
		if rawURL != "" {
			v.rawURL = strings.TrimRight(rawURL, "/")
		}
	}
}

func WithReadmeTimeout(d time.Duration) GitHubOption {
	return func(v *GitHubVerifier) {
		if d > 0 {
			v.readmeTimeout = d
		}
	}
}

func WithGitHubLogger(l *zap.Logger) GitHubOption {
	return func(v *GitHubVerifier) {
		if l != nil {
			v.logger = l
		}
	}
}

func NewGitHubVerifier(fetcher *Fetcher, budget *Budget, opts ...GitHubOption) *GitHubVerifier {
	v := &GitHubVerifier{
		fetcher:       fetcher,
		budget:        budget,
		apiURL:        "https://api.github.com",
		rawURL:        "https://raw.githubusercontent.com",
		readmeTimeout: 5 * time.Second,
		now:           time.Now,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// GitHubUsername extracts the account name from a profile or repository URL.
func GitHubUsername(profileURL string) (string, error) {
	m := githubUserPattern.FindStringSubmatch(profileURL)
	if m == nil {
		return "", ErrInvalidGitHubURL
	}
	return m[1], nil
}

// Verify never fails: problems turn into a zero score plus an error note.
func (v *GitHubVerifier) Verify(ctx context.Context, profileURL string, keywords []string) GitHubResult {
	data, err := v.verify(ctx, profileURL, keywords)
	if err != nil {
		v.logger.Warn("github verification failed", zap.String("url", profileURL), zap.Error(err))
		return GitHubResult{
			Data:   GitHubData{Repositories: []Repository{}},
			Errors: []string{err.Error()},
		}
	}
	return GitHubResult{Data: data}
}

func (v *GitHubVerifier) verify(ctx context.Context, profileURL string, keywords []string) (GitHubData, error) {
	username, err := GitHubUsername(profileURL)
	if err != nil {
		return GitHubData{}, err
	}

	if !v.budget.TryTake() {
		return GitHubData{}, ErrRateLimited
	}

	reposURL := fmt.Sprintf("%s/users/%s/repos?sort=stars&per_page=100", v.apiURL, url.PathEscape(username))
	resp, err := v.fetcher.GetWithRetry(ctx, reposURL)
	if err != nil {
		return GitHubData{}, err
	}
	if !resp.OK() {
		if resp.Status == http.StatusNotFound {
			return GitHubData{}, ErrProfileNotFound
		}
		return GitHubData{}, fmt.Errorf("GitHub API returned status %d", resp.Status)
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		v.logger.Debug("github rate limit",
			zap.String("remaining", remaining),
			zap.String("reset", resp.Header.Get("X-RateLimit-Reset")),
		)
	}

	repos := gjson.ParseBytes(resp.Body)
	if !repos.IsArray() {
		return GitHubData{}, ErrUnexpectedGitHub
	}

	list := repos.Array()
	if len(list) > topRepoCount {
		list = list[:topRepoCount]
	}

	data := GitHubData{Repositories: make([]Repository, 0, len(list))}
	now := v.now()
	for _, repo := range list {
		name := repo.Get("name").String()
		data.Repositories = append(data.Repositories, Repository{
			Name:     name,
			Language: repo.Get("language").String(),
			Stars:    int(repo.Get("stargazers_count").Int()),
			Readme:   v.readme(ctx, username, name),
		})

		if pushed := repo.Get("pushed_at").String(); pushed != "" {
			if t, err := time.Parse(time.RFC3339, pushed); err == nil && now.Sub(t) < recentPushWindow {
				data.TotalCommits += recentPushBonus
			}
		}
	}

	base := matchRatio(keywords, func(k string) bool {
		for _, r := range data.Repositories {
			if containsFold(r.Name, k) || containsFold(r.Language, k) || containsFold(r.Readme, k) {
				return true
			}
		}
		return false
	})
	bonus := math.Min(float64(data.TotalCommits)/activityBonusUnit, maxActivityBonus)
	data.MatchScore = percent(base + base*bonus)

	v.logger.Info("github verified",
		zap.String("url", profileURL),
		zap.Int("score", data.MatchScore),
		zap.Int("repos", len(data.Repositories)),
		zap.Int("commits", data.TotalCommits),
	)
	return data, nil
}

// readme tries the main branch, then master, while the budget allows.
// Failures are ignored.
func (v *GitHubVerifier) readme(ctx context.Context, username, repo string) string {
	for _, branch := range []string{"main", "master"} {
		if !v.budget.TryTake() {
			return ""
		}
		readmeURL := fmt.Sprintf("%s/%s/%s/%s/README.md", v.rawURL, url.PathEscape(username), url.PathEscape(repo), branch)
		resp, err := v.fetcher.Get(ctx, readmeURL, v.readmeTimeout)
		if err != nil || !resp.OK() {
			continue
		}
		return truncateRunes(string(resp.Body), readmeLimit)
	}
	return ""
}

// truncateRunes keeps the first n runes of the raw text; markup is kept so
// keywords in link targets and image sources still match.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

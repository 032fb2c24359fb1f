package verifier

import (
	"math"
	"strings"
)

// Sources records which profiles took part in a verification.
type Sources int

const (
	NoSource Sources = iota
	LinkedInOnly
	GitHubOnly
	Both
)

func (s Sources) String() string {
	switch s {
	case LinkedInOnly:
		return "linkedin"
	case GitHubOnly:
		return "github"
	case Both:
		return "both"
	default:
		return "none"
	}
}

func SourcesOf(hasLinkedIn, hasGitHub bool) Sources {
	switch {
	case hasLinkedIn && hasGitHub:
		return Both
	case hasLinkedIn:
		return LinkedInOnly
	case hasGitHub:
		return GitHubOnly
	default:
		return NoSource
	}
}

const (
	linkedInWeight = 0.6
	gitHubWeight   = 0.4
)

// OverallScore weighs LinkedIn 60/40 against GitHub when both are present.
func OverallScore(s Sources, linkedin, github int) int {
	switch s {
	case Both:
		return int(math.Round(float64(linkedin)*linkedInWeight + float64(github)*gitHubWeight))
	case LinkedInOnly:
		return linkedin
	case GitHubOnly:
		return github
	default:
		return 0
	}
}

// matchRatio returns the share of keywords for which found reports a hit.
// Keywords are lowercased before the call.
func matchRatio(keywords []string, found func(keyword string) bool) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, k := range keywords {
		if found(strings.ToLower(k)) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

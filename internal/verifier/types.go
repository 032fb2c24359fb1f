// Package verifier cross-checks a candidate's LinkedIn and GitHub profiles
// against screening keywords.
package verifier

import "time"

type Position struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

type LinkedInData struct {
	Positions  []Position `json:"positions"`
	Skills     []string   `json:"skills"`
	MatchScore int        `json:"matchScore"`
}

type Repository struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Stars    int    `json:"stars"`
	Readme   string `json:"readme"`
}

type GitHubData struct {
	Repositories []Repository `json:"repositories"`
	TotalCommits int          `json:"totalCommits"`
	MatchScore   int          `json:"matchScore"`
}

// VerificationDetails is the combined outcome of one verification call.
type VerificationDetails struct {
	LinkedInData *LinkedInData `json:"linkedinData,omitempty"`
	GitHubData   *GitHubData   `json:"githubData,omitempty"`
	OverallScore int           `json:"overallScore"`
	VerifiedAt   time.Time     `json:"verifiedAt"`
	Errors       []string      `json:"errors,omitempty"`
}

type Request struct {
	LinkedInURL string   `json:"linkedinUrl"`
	GitHubURL   string   `json:"githubUrl"`
	Keywords    []string `json:"keywords"`
}

// LinkedInResult is what a LinkedIn source reports back; errors are soft.
type LinkedInResult struct {
	Data   LinkedInData
	Errors []string
}

type GitHubResult struct {
	Data   GitHubData
	Errors []string
}

package verifier

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

// ProfileParser extracts positions and skills from a LinkedIn profile page.
type ProfileParser interface {
	Parse(html []byte) (LinkedInProfile, error)
}

type LinkedInProfile struct {
	Positions []Position
	Skills    []string
}

// SelectorSet lists fallback CSS selectors for each part of the page.
// LinkedIn markup changes often; every list is tried as one combined selector.
type SelectorSet struct {
	Experience []string `yaml:"experience"`
	Title      []string `yaml:"title"`
	Company    []string `yaml:"company"`
	Skills     []string `yaml:"skills"`
}

func DefaultSelectors() SelectorSet {
	return SelectorSet{
		Experience: []string{".experience-item", ".pv-entity__summary-info", `[data-section="experience"]`},
		Title:      []string{".pv-entity__summary-info-v2-heading", "h3", ".t-bold"},
		Company:    []string{".pv-entity__secondary-title", ".t-14", ".t-normal"},
		Skills:     []string{".skill-name", ".pv-skill-category-entity__name", `[data-section="skills"] li`},
	}
}

// LoadSelectors reads a YAML selector file. Lists left empty keep their defaults.
func LoadSelectors(path string) (SelectorSet, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return sel, err
	}
	var override SelectorSet
	if err := yaml.Unmarshal(b, &override); err != nil {
		return sel, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(override.Experience) > 0 {
		sel.Experience = override.Experience
	}
	if len(override.Title) > 0 {
		sel.Title = override.Title
	}
	if len(override.Company) > 0 {
		sel.Company = override.Company
	}
	if len(override.Skills) > 0 {
		sel.Skills = override.Skills
	}
	return sel, nil
}

type SelectorParser struct {
	experience string
	title      string
	company    string
	skills     string
}

func NewSelectorParser(sel SelectorSet) *SelectorParser {
	return &SelectorParser{
		experience: strings.Join(sel.Experience, ", "),
		title:      strings.Join(sel.Title, ", "),
		company:    strings.Join(sel.Company, ", "),
		skills:     strings.Join(sel.Skills, ", "),
	}
}

func (p *SelectorParser) Parse(html []byte) (LinkedInProfile, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return LinkedInProfile{}, fmt.Errorf("parse linkedin html: %w", err)
	}

	profile := LinkedInProfile{Positions: []Position{}, Skills: []string{}}

	doc.Find(p.experience).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(p.title).First().Text())
		company := strings.TrimSpace(s.Find(p.company).First().Text())
		if title != "" && company != "" {
			profile.Positions = append(profile.Positions, Position{Title: title, Company: company})
		}
	})

	doc.Find(p.skills).Each(func(_ int, s *goquery.Selection) {
		if skill := strings.TrimSpace(s.Text()); skill != "" {
			profile.Skills = append(profile.Skills, skill)
		}
	})

	return profile, nil
}

// Package export renders screening results as an Excel workbook.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Ranked Candidates"
)

type Candidate struct {
	Name                string
	Criteria            map[string]bool
	Summary             string
	QualificationsCount int
	LinkedInURL         string
	GitHubURL           string
	// VerificationScore is nil when the candidate was never verified.
	VerificationScore *int
}

type Report struct {
	Title       string
	Criteria    []model.Criterion
	Candidates  []Candidate
	GeneratedAt time.Time
}

// CandidateFromResume flattens a stored resume into a report row.
func CandidateFromResume(r *model.Resume) Candidate {
	c := Candidate{Name: model.CandidateName(r.Filename), Criteria: map[string]bool{}}
	if r.AnalysisResult != nil {
		c.Criteria = r.AnalysisResult.Criteria
		c.Summary = r.AnalysisResult.Summary
		c.QualificationsCount = r.AnalysisResult.QualificationsCount
	}
	if r.LinkedInURL != nil {
		c.LinkedInURL = *r.LinkedInURL
	}
	if r.GitHubURL != nil {
		c.GitHubURL = *r.GitHubURL
	}
	if r.VerificationResult != nil {
		score := r.VerificationResult.OverallScore
		c.VerificationScore = &score
	}
	return c
}

// Rank orders candidates by qualifications, then verification score, then name.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.QualificationsCount != b.QualificationsCount {
			return a.QualificationsCount > b.QualificationsCount
		}
		as, bs := -1, -1
		if a.VerificationScore != nil {
			as = *a.VerificationScore
		}
		if b.VerificationScore != nil {
			bs = *b.VerificationScore
		}
		if as != bs {
			return as > bs
		}
		return a.Name < b.Name
	})
}

// WriteReport ranks the candidates in place and writes the workbook to w.
func WriteReport(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	Rank(r.Candidates)

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return err
	}

	if err := createSummarySheet(f, r); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createCandidatesSheet(f, r); err != nil {
		return fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

// SaveReport writes the workbook to path, adding an .xlsx extension if missing.
func SaveReport(path string, r Report) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func createSummarySheet(f *excelize.File, r Report) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 35); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 50); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	title := r.Title
	if title == "" {
		title = "Resume Screening Report"
	}

	row := 1
	header := func(text string) {
		f.SetCellValue(summarySheet, cell(1, row), text)
		f.SetCellStyle(summarySheet, cell(1, row), cell(2, row), headerStyle)
		f.MergeCell(summarySheet, cell(1, row), cell(2, row))
		row++
	}
	label := func(name string, value any) {
		f.SetCellValue(summarySheet, cell(1, row), name)
		f.SetCellStyle(summarySheet, cell(1, row), cell(1, row), labelStyle)
		f.SetCellValue(summarySheet, cell(2, row), value)
		row++
	}

	header(title)
	row++
	label("Generated:", generated.Format("2006-01-02 15:04:05"))
	label("Total Candidates:", len(r.Candidates))
	row++

	header("Qualified Candidates per Criterion")
	for _, c := range r.Criteria {
		n := 0
		for _, cand := range r.Candidates {
			if cand.Criteria[c.ID] {
				n++
			}
		}
		label(c.Name+":", n)
	}
	row++

	twoOrMore, all := 0, 0
	for _, cand := range r.Candidates {
		if cand.QualificationsCount >= 2 {
			twoOrMore++
		}
		if len(r.Criteria) > 0 && cand.QualificationsCount == len(r.Criteria) {
			all++
		}
	}
	header("Combined")
	label("At least two qualifications:", twoOrMore)
	label("All qualifications:", all)
	return nil
}

func createCandidatesSheet(f *excelize.File, r Report) error {
	headers := []string{"Rank", "Candidate", "Qualifications"}
	for _, c := range r.Criteria {
		headers = append(headers, c.Name)
	}
	headers = append(headers, "Verification Score", "LinkedIn", "GitHub", "Summary")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		f.SetCellValue(candidatesSheet, cell(i+1, 1), h)
	}
	f.SetCellStyle(candidatesSheet, cell(1, 1), cell(len(headers), 1), headerStyle)

	for i, cand := range r.Candidates {
		row := i + 2
		col := 1
		put := func(v any) {
			f.SetCellValue(candidatesSheet, cell(col, row), v)
			col++
		}

		put(i + 1)
		put(cand.Name)
		put(cand.QualificationsCount)
		for _, c := range r.Criteria {
			if cand.Criteria[c.ID] {
				put("Yes")
			} else {
				put("No")
			}
		}
		if cand.VerificationScore != nil {
			put(*cand.VerificationScore)
		} else {
			put("")
		}
		put(cand.LinkedInURL)
		put(cand.GitHubURL)
		put(cand.Summary)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(candidatesSheet, "B", "B", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(candidatesSheet, lastCol, lastCol, 80); err != nil {
		return err
	}
	return f.SetPanes(candidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

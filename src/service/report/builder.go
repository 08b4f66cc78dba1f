package report

import (
	"errors"
	"fmt"
	"time"

	"quality-analyzer/src/model"
)

var (
	// ErrFinalized is returned when a built report is modified
	ErrFinalized = errors.New("report already built")

	// ErrForeignIssue is returned when an issue points at another file
	ErrForeignIssue = errors.New("issue location does not match file")
)

// Builder assembles a Report one file at a time. Build finalizes it.
type Builder struct {
	options    model.AnalysisOptions
	files      []model.FileAnalysis
	categories []model.CategorySummary
	skipped    int
	built      bool
}

// NewBuilder creates a builder for a run with the given options
func NewBuilder(options model.AnalysisOptions) *Builder {
	return &Builder{options: options}
}

// AddFile scores a file analysis and appends it. Every issue must be
// located in the file itself.
func (b *Builder) AddFile(fa model.FileAnalysis) error {
	if b.built {
		return ErrFinalized
	}
	for _, issue := range fa.Issues {
		if issue.Location.File != fa.Path {
			return fmt.Errorf("%w: %s issue in %s added to %s", ErrForeignIssue, issue.Rule, issue.Location.File, fa.Path)
		}
	}

	fa.Issues = append([]model.Issue{}, fa.Issues...)
	fa.Score = FileScore(fa.Issues, fa.LinesOfCode)
	b.files = append(b.files, fa)
	b.categories = Summarize(b.files)
	return nil
}

// SkipFile records a file that could not be analyzed
func (b *Builder) SkipFile() error {
	if b.built {
		return ErrFinalized
	}
	b.skipped++
	return nil
}

// Files returns the number of files added so far
func (b *Builder) Files() int {
	return len(b.files)
}

// Build finalizes the report
func (b *Builder) Build(generatedAt time.Time) (*model.Report, error) {
	if b.built {
		return nil, ErrFinalized
	}
	b.built = true

	var all []model.Issue
	loc := 0
	bySeverity := severityBuckets()
	for _, f := range b.files {
		loc += f.LinesOfCode
		for _, issue := range f.Issues {
			bySeverity[issue.Severity]++
		}
		all = append(all, f.Issues...)
	}

	files := append([]model.FileAnalysis{}, b.files...)
	categories := append([]model.CategorySummary{}, b.categories...)

	return &model.Report{
		Summary: model.ReportSummary{
			TotalFiles:       len(files),
			FilesSkipped:     b.skipped,
			TotalIssues:      len(all),
			LinesOfCode:      loc,
			Score:            OverallScore(files),
			IssuesBySeverity: bySeverity,
			Options:          b.options,
			GeneratedAt:      generatedAt,
		},
		Files:      files,
		Categories: categories,
		TopIssues:  TopIssues(all, TopIssueCount),
	}, nil
}

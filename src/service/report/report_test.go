package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
)

func issueAt(t *testing.T, file string, cat model.Category, sev model.Severity) model.Issue {
	t.Helper()
	issue, err := model.NewIssue(cat, "test-rule").
		Severity(sev).
		Title("Test issue").
		Description("%s issue", sev).
		Suggestion("Fix it").
		Snippet("let x = 1").
		At(file, 3, 0).
		Until(5, 0).
		Build()
	require.NoError(t, err)
	return issue
}

func TestFileScore(t *testing.T) {
	tests := []struct {
		name string
		sevs []model.Severity
		loc  int
		want float64
	}{
		{"no issues", nil, 0, 100},
		{"no issues large file", nil, 5000, 100},
		{"one low tiny file", []model.Severity{model.SeverityLow}, 0, 99},
		{"one critical at 100 loc", []model.Severity{model.SeverityCritical}, 100, 90.91},
		{"factor caps at 200 loc", []model.Severity{model.SeverityHigh, model.SeverityMedium}, 1000, 94.17},
		{"clamped at zero", repeat(model.SeverityCritical, 20), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var issues []model.Issue
			for _, sev := range tt.sevs {
				issues = append(issues, issueAt(t, "a.js", model.CategorySize, sev))
			}
			assert.InDelta(t, tt.want, FileScore(issues, tt.loc), 1e-9)
		})
	}
}

func repeat(sev model.Severity, n int) []model.Severity {
	out := make([]model.Severity, n)
	for i := range out {
		out[i] = sev
	}
	return out
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 100.0, OverallScore(nil))
	assert.Equal(t, 83.33, OverallScore([]model.FileAnalysis{{Score: 100}, {Score: 100}, {Score: 50}}))
}

func TestTopIssues_StableBySeverity(t *testing.T) {
	var issues []model.Issue
	sevs := []model.Severity{model.SeverityLow, model.SeverityCritical, model.SeverityMedium, model.SeverityCritical}
	for _, sev := range sevs {
		issues = append(issues, issueAt(t, "a.js", model.CategoryNaming, sev))
	}

	top := TopIssues(issues, 3)
	require.Len(t, top, 3)
	assert.Equal(t, issues[1].ID, top[0].ID)
	assert.Equal(t, issues[3].ID, top[1].ID)
	assert.Equal(t, model.SeverityMedium, top[2].Severity)

	assert.Equal(t, model.SeverityLow, issues[0].Severity, "input is not reordered")
	assert.NotNil(t, TopIssues(nil, 10))
}

func TestBuilder_Invariants(t *testing.T) {
	b := NewBuilder(model.AnalysisOptions{Path: "src"})

	require.NoError(t, b.AddFile(model.FileAnalysis{Path: "clean.js", LinesOfCode: 40}))
	require.NoError(t, b.AddFile(model.FileAnalysis{
		Path:        "messy.js",
		LinesOfCode: 120,
		Issues: []model.Issue{
			issueAt(t, "messy.js", model.CategoryNaming, model.SeverityHigh),
			issueAt(t, "messy.js", model.CategoryNaming, model.SeverityLow),
			issueAt(t, "messy.js", model.CategoryComplexity, model.SeverityCritical),
		},
	}))
	require.NoError(t, b.AddFile(model.FileAnalysis{
		Path:        "dup.js",
		LinesOfCode: 80,
		Issues:      []model.Issue{issueAt(t, "dup.js", model.CategoryNaming, model.SeverityMedium)},
	}))
	require.NoError(t, b.SkipFile())

	report, err := b.Build(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.Files[0].Score, "zero issues always score 100")
	assert.Equal(t, 3, report.Summary.TotalFiles)
	assert.Equal(t, 1, report.Summary.FilesSkipped)
	assert.Equal(t, 240, report.Summary.LinesOfCode)
	assert.Equal(t, 4, report.Summary.TotalIssues)

	categoryTotal := 0
	for _, c := range report.Categories {
		bucketTotal := 0
		for _, n := range c.Severities {
			bucketTotal += n
		}
		assert.Equal(t, c.Count, bucketTotal, "category %s", c.Category)
		categoryTotal += c.Count
	}
	assert.Equal(t, report.Summary.TotalIssues, categoryTotal)

	require.Len(t, report.Categories, 2)
	assert.Equal(t, model.CategoryNaming, report.Categories[0].Category)
	assert.Equal(t, 3, report.Categories[0].Count)
	assert.Equal(t, model.CategoryComplexity, report.Categories[1].Category)

	assert.Equal(t, model.SeverityCritical, report.TopIssues[0].Severity)
	assert.Equal(t, 1, report.Summary.IssuesBySeverity[model.SeverityLow])

	fileTotal := 0.0
	for _, f := range report.Files {
		fileTotal += f.Score
	}
	assert.InDelta(t, fileTotal/3, report.Summary.Score, 0.01)
}

func TestBuilder_RejectsForeignIssueAndFinalizes(t *testing.T) {
	b := NewBuilder(model.AnalysisOptions{})

	err := b.AddFile(model.FileAnalysis{
		Path:   "a.js",
		Issues: []model.Issue{issueAt(t, "b.js", model.CategorySize, model.SeverityLow)},
	})
	assert.ErrorIs(t, err, ErrForeignIssue)

	_, err = b.Build(time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddFile(model.FileAnalysis{Path: "c.js"}), ErrFinalized)
	_, err = b.Build(time.Now())
	assert.ErrorIs(t, err, ErrFinalized)
}

func sampleReport(t *testing.T) *model.Report {
	b := NewBuilder(model.AnalysisOptions{Path: "src"})
	require.NoError(t, b.AddFile(model.FileAnalysis{
		Path:        "src/a.js",
		LinesOfCode: 50,
		Issues: []model.Issue{
			issueAt(t, "src/a.js", model.CategoryDuplication, model.SeverityHigh),
			issueAt(t, "src/a.js", model.CategoryBestPractices, model.SeverityLow),
		},
	}))
	report, err := b.Build(time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC))
	require.NoError(t, err)
	return report
}

func TestGenerator_JSON(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{IncludeSuggestions: true}).Generate(sampleReport(t), "json")
	require.NoError(t, err)

	require.True(t, json.Valid([]byte(out)))
	assert.Equal(t, int64(2), gjson.Get(out, "summary.totalIssues").Int())
	assert.Equal(t, "src/a.js", gjson.Get(out, "files.0.issues.0.location.file").String())
	assert.Equal(t, "Fix it", gjson.Get(out, "files.0.issues.0.suggestion").String())
	assert.False(t, gjson.Get(out, "files.0.issues.0.codeSnippet").Exists(), "snippets are off")
}

func TestGenerator_Markdown(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(t), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Code Quality Report")
	assert.Contains(t, out, "**Generated:** 2026-05-06 07:08:09 UTC")
	assert.Contains(t, out, "### Best practices (1 issues)")
	assert.Contains(t, out, "- **File:** `src/a.js:3-5`")
	assert.NotContains(t, out, "Suggestion")
}

func TestGenerator_SARIF(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{IncludeSuggestions: true}).Generate(sampleReport(t), "sarif")
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", gjson.Get(out, "version").String())
	assert.Equal(t, int64(2), gjson.Get(out, "runs.0.results.#").Int())
	assert.Equal(t, "duplication/test-rule", gjson.Get(out, "runs.0.results.0.ruleId").String())
	assert.Equal(t, "error", gjson.Get(out, "runs.0.results.0.level").String())
	assert.Equal(t, int64(5), gjson.Get(out, "runs.0.results.0.locations.0.physicalLocation.region.endLine").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "runs.0.tool.driver.rules.#").Int())
}

func TestGenerator_UnknownFormat(t *testing.T) {
	_, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(t), "xml")
	assert.Error(t, err)
}

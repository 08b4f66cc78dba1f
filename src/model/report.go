package model

import "time"

// FileAnalysis is the analysis result for one file
type FileAnalysis struct {
	Path        string  `json:"path"`
	LinesOfCode int     `json:"linesOfCode"`
	Issues      []Issue `json:"issues"`
	Score       float64 `json:"score"`
}

// CategorySummary counts the issues of one category by severity
type CategorySummary struct {
	Category   Category         `json:"category"`
	Count      int              `json:"count"`
	Severities map[Severity]int `json:"severities"`
}

// AnalysisOptions records the options a report was produced with
type AnalysisOptions struct {
	Path        string   `json:"path"`
	Detectors   []string `json:"detectors"`
	Languages   []string `json:"languages"`
	Concurrency int      `json:"concurrency"`
	MinSeverity Severity `json:"minSeverity"`
}

// ReportSummary contains aggregated statistics
type ReportSummary struct {
	TotalFiles       int              `json:"totalFiles"`
	FilesSkipped     int              `json:"filesSkipped"`
	TotalIssues      int              `json:"totalIssues"`
	LinesOfCode      int              `json:"linesOfCode"`
	Score            float64          `json:"score"`
	IssuesBySeverity map[Severity]int `json:"issuesBySeverity"`
	Options          AnalysisOptions  `json:"options"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}

// Report is the complete analysis output. It is a plain value with no live
// references into syntax trees.
type Report struct {
	Summary    ReportSummary     `json:"summary"`
	Files      []FileAnalysis    `json:"files"`
	Categories []CategorySummary `json:"categories"`
	TopIssues  []Issue           `json:"topIssues"`
}

package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Severity represents the severity level of an issue
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists all severities from least to most severe
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Weight returns the ranking weight (low=1 ... critical=4), 0 if unknown
func (s Severity) Weight() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Valid reports whether s is a known severity
func (s Severity) Valid() bool {
	return s.Weight() > 0
}

// AtLeast reports whether s is at least as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s.Weight() >= other.Weight()
}

// ParseSeverity converts a string to a Severity
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// Category represents the category of a quality issue
type Category string

const (
	CategoryComplexity    Category = "complexity"
	CategoryNaming        Category = "naming"
	CategorySize          Category = "size"
	CategoryDuplication   Category = "duplication"
	CategoryBestPractices Category = "best-practices"
)

// Categories lists all categories in their canonical order
var Categories = []Category{
	CategoryComplexity, CategoryNaming, CategorySize,
	CategoryDuplication, CategoryBestPractices,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Location points at the source range an issue refers to
type Location struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
}

// Issue is a single detected quality issue. Issues are values; build them
// with IssueBuilder and never modify them afterwards.
type Issue struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
	Location    Location `json:"location"`
	CodeSnippet string   `json:"codeSnippet,omitempty"`
	Rule        string   `json:"rule"`
}

// ErrInvalidIssue is returned when an issue is missing required fields
var ErrInvalidIssue = errors.New("invalid issue")

// IssueBuilder stages the construction of an Issue. Build validates the
// required fields so partial issues never reach a report.
type IssueBuilder struct {
	issue Issue
}

// NewIssue starts building an issue for a category and rule
func NewIssue(category Category, rule string) *IssueBuilder {
	return &IssueBuilder{issue: Issue{Category: category, Rule: rule}}
}

func (b *IssueBuilder) Severity(s Severity) *IssueBuilder {
	b.issue.Severity = s
	return b
}

func (b *IssueBuilder) Title(title string) *IssueBuilder {
	b.issue.Title = title
	return b
}

func (b *IssueBuilder) Description(format string, args ...any) *IssueBuilder {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	b.issue.Description = format
	return b
}

func (b *IssueBuilder) Suggestion(s string) *IssueBuilder {
	b.issue.Suggestion = s
	return b
}

// At sets the start of the location
func (b *IssueBuilder) At(file string, line, column int) *IssueBuilder {
	b.issue.Location.File = file
	b.issue.Location.Line = line
	b.issue.Location.Column = column
	return b
}

// Until sets the optional end of the location
func (b *IssueBuilder) Until(line, column int) *IssueBuilder {
	b.issue.Location.EndLine = line
	b.issue.Location.EndColumn = column
	return b
}

func (b *IssueBuilder) Snippet(code string) *IssueBuilder {
	b.issue.CodeSnippet = code
	return b
}

// Build validates and returns the issue with a fresh ID
func (b *IssueBuilder) Build() (Issue, error) {
	issue := b.issue
	var missing []string
	if !issue.Category.Valid() {
		missing = append(missing, "category")
	}
	if !issue.Severity.Valid() {
		missing = append(missing, "severity")
	}
	if issue.Rule == "" {
		missing = append(missing, "rule")
	}
	if issue.Title == "" {
		missing = append(missing, "title")
	}
	if issue.Description == "" {
		missing = append(missing, "description")
	}
	if issue.Location.File == "" {
		missing = append(missing, "location.file")
	}
	if issue.Location.Line < 1 {
		missing = append(missing, "location.line")
	}
	if len(missing) > 0 {
		return Issue{}, fmt.Errorf("%w: %s", ErrInvalidIssue, strings.Join(missing, ", "))
	}
	issue.ID = uuid.NewString()
	return issue, nil
}

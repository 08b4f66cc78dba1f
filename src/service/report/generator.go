package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// Version is reported as the SARIF driver version
var Version = "1.0.0"

// worstFileCount caps the file table in markdown reports
const worstFileCount = 10

// Generator generates reports in various formats
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate generates a report in the specified format
func (g *Generator) Generate(report *model.Report, format string) (string, error) {
	util.Debug("Generating report in %s format (%d issues)", format, report.Summary.TotalIssues)
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "sarif":
		return g.generateSARIF(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Extension returns the file extension for a format
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "sarif":
		return "sarif"
	default:
		return "json"
	}
}

func (g *Generator) generateJSON(report *model.Report) (string, error) {
	data, err := json.MarshalIndent(g.strip(report), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// strip removes the optional fields the output config turns off
func (g *Generator) strip(report *model.Report) *model.Report {
	if g.cfg.IncludeSuggestions && g.cfg.IncludeCodeSnippets {
		return report
	}

	clean := func(issues []model.Issue) []model.Issue {
		out := make([]model.Issue, len(issues))
		for i, issue := range issues {
			if !g.cfg.IncludeSuggestions {
				issue.Suggestion = ""
			}
			if !g.cfg.IncludeCodeSnippets {
				issue.CodeSnippet = ""
			}
			out[i] = issue
		}
		return out
	}

	stripped := *report
	stripped.Files = make([]model.FileAnalysis, len(report.Files))
	for i, f := range report.Files {
		f.Issues = clean(f.Issues)
		stripped.Files[i] = f
	}
	stripped.TopIssues = clean(report.TopIssues)
	return &stripped
}

func (g *Generator) generateMarkdown(report *model.Report) (string, error) {
	var sb strings.Builder
	summary := report.Summary

	// Header
	sb.WriteString("# Code Quality Report\n\n")
	sb.WriteString(fmt.Sprintf("**Path:** %s\n", summary.Options.Path))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", summary.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Score:** %.2f/100\n", summary.Score))
	sb.WriteString(fmt.Sprintf("- **Files Analyzed:** %d\n", summary.TotalFiles))
	if summary.FilesSkipped > 0 {
		sb.WriteString(fmt.Sprintf("- **Files Skipped:** %d\n", summary.FilesSkipped))
	}
	sb.WriteString(fmt.Sprintf("- **Lines of Code:** %d\n", summary.LinesOfCode))
	sb.WriteString(fmt.Sprintf("- **Total Issues:** %d\n\n", summary.TotalIssues))

	// By Severity
	sb.WriteString("### Issues by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for i := len(model.Severities) - 1; i >= 0; i-- {
		sev := model.Severities[i]
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, summary.IssuesBySeverity[sev]))
	}
	sb.WriteString("\n")

	// By Category
	if len(report.Categories) > 0 {
		sb.WriteString("### Issues by Category\n\n")
		sb.WriteString("| Category | Count | Critical | High | Medium | Low |\n")
		sb.WriteString("|----------|-------|----------|------|--------|-----|\n")
		for _, c := range report.Categories {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %d |\n", c.Category, c.Count,
				c.Severities[model.SeverityCritical], c.Severities[model.SeverityHigh],
				c.Severities[model.SeverityMedium], c.Severities[model.SeverityLow]))
		}
		sb.WriteString("\n")
	}

	// Lowest scoring files
	if worst := worstFiles(report.Files, worstFileCount); len(worst) > 0 {
		sb.WriteString("### Lowest Scoring Files\n\n")
		sb.WriteString("| File | Score | Issues | LOC |\n")
		sb.WriteString("|------|-------|--------|-----|\n")
		for _, f := range worst {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %d | %d |\n", f.Path, f.Score, len(f.Issues), f.LinesOfCode))
		}
		sb.WriteString("\n")
	}

	// Issues by Category
	sb.WriteString("## Issues\n\n")

	issuesByCategory := make(map[model.Category][]model.Issue)
	for _, f := range report.Files {
		for _, issue := range f.Issues {
			issuesByCategory[issue.Category] = append(issuesByCategory[issue.Category], issue)
		}
	}

	for _, cat := range model.Categories {
		issues := issuesByCategory[cat]
		if len(issues) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("### %s (%d issues)\n\n", categoryTitle(cat), len(issues)))

		for _, issue := range issues {
			sb.WriteString(fmt.Sprintf("#### %s %s\n\n", severityLabel(issue.Severity), issue.Title))
			sb.WriteString(fmt.Sprintf("- **File:** `%s`\n", formatLocation(issue.Location)))
			sb.WriteString(fmt.Sprintf("- **Rule:** %s\n", issue.Rule))
			sb.WriteString(fmt.Sprintf("- **Severity:** %s\n", issue.Severity))
			sb.WriteString(fmt.Sprintf("- **Description:** %s\n", issue.Description))

			if g.cfg.IncludeSuggestions && issue.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("- **Suggestion:** %s\n", issue.Suggestion))
			}

			if g.cfg.IncludeCodeSnippets && issue.CodeSnippet != "" {
				sb.WriteString("\n**Code:**\n```\n")
				sb.WriteString(issue.CodeSnippet)
				sb.WriteString("\n```\n")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

func (g *Generator) generateSARIF(report *model.Report) (string, error) {
	var issues []model.Issue
	for _, f := range report.Files {
		issues = append(issues, f.Issues...)
	}

	sarif := map[string]any{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":    "quality-analyzer",
						"version": Version,
						"rules":   g.buildSARIFRules(issues),
					},
				},
				"results": g.buildSARIFResults(issues),
			},
		},
	}

	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sarifRuleID(issue model.Issue) string {
	return string(issue.Category) + "/" + issue.Rule
}

func (g *Generator) buildSARIFRules(issues []model.Issue) []map[string]any {
	ruleMap := make(map[string]bool)
	rules := []map[string]any{}

	for _, issue := range issues {
		ruleID := sarifRuleID(issue)
		if ruleMap[ruleID] {
			continue
		}
		ruleMap[ruleID] = true

		rules = append(rules, map[string]any{
			"id":   ruleID,
			"name": issue.Rule,
			"shortDescription": map[string]any{
				"text": issue.Title,
			},
			"defaultConfiguration": map[string]any{
				"level": sarifLevel(issue.Severity),
			},
		})
	}

	return rules
}

func (g *Generator) buildSARIFResults(issues []model.Issue) []map[string]any {
	results := []map[string]any{}

	for _, issue := range issues {
		region := map[string]any{
			"startLine":   issue.Location.Line,
			"startColumn": issue.Location.Column + 1,
		}
		if issue.Location.EndLine > 0 {
			region["endLine"] = issue.Location.EndLine
		}

		result := map[string]any{
			"ruleId":  sarifRuleID(issue),
			"level":   sarifLevel(issue.Severity),
			"message": map[string]any{"text": issue.Description},
			"locations": []map[string]any{
				{
					"physicalLocation": map[string]any{
						"artifactLocation": map[string]any{
							"uri": issue.Location.File,
						},
						"region": region,
					},
				},
			},
		}

		if g.cfg.IncludeSuggestions && issue.Suggestion != "" {
			result["fixes"] = []map[string]any{
				{
					"description": map[string]any{"text": issue.Suggestion},
				},
			}
		}

		results = append(results, result)
	}

	return results
}

func worstFiles(files []model.FileAnalysis, n int) []model.FileAnalysis {
	var flagged []model.FileAnalysis
	for _, f := range files {
		if len(f.Issues) > 0 {
			flagged = append(flagged, f)
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Score < flagged[j].Score
	})
	if len(flagged) > n {
		flagged = flagged[:n]
	}
	return flagged
}

func formatLocation(loc model.Location) string {
	if loc.EndLine > loc.Line {
		return fmt.Sprintf("%s:%d-%d", loc.File, loc.Line, loc.EndLine)
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}

func categoryTitle(c model.Category) string {
	s := strings.ReplaceAll(string(c), "-", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

func severityLabel(s model.Severity) string {
	return "[" + strings.ToUpper(string(s)) + "]"
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return "error"
	case model.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

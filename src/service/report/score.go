package report

import (
	"math"
	"sort"

	"quality-analyzer/src/model"
)

// TopIssueCount is the number of issues kept in Report.TopIssues
const TopIssueCount = 10

var penalties = map[model.Severity]float64{
	model.SeverityCritical: 10,
	model.SeverityHigh:     5,
	model.SeverityMedium:   2,
	model.SeverityLow:      1,
}

// FileScore scores a file from 0 to 100. Larger files absorb slightly more
// penalty before the score drops.
func FileScore(issues []model.Issue, linesOfCode int) float64 {
	if len(issues) == 0 {
		return 100
	}

	penalty := 0.0
	for _, issue := range issues {
		penalty += penalties[issue.Severity]
	}

	factor := 1 + math.Min(float64(linesOfCode)/100, 2)*0.1
	score := 100 - penalty/factor
	return round2(math.Max(0, math.Min(100, score)))
}

// OverallScore is the mean file score, or 100 with no files
func OverallScore(files []model.FileAnalysis) float64 {
	if len(files) == 0 {
		return 100
	}

	total := 0.0
	for _, f := range files {
		total += f.Score
	}
	return round2(total / float64(len(files)))
}

// TopIssues returns the n most severe issues, keeping input order among
// equal severities
func TopIssues(issues []model.Issue, n int) []model.Issue {
	sorted := make([]model.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Weight() > sorted[j].Severity.Weight()
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summarize counts every issue by category and severity. Categories without
// issues are omitted; the rest are ordered by count, then canonical order.
func Summarize(files []model.FileAnalysis) []model.CategorySummary {
	byCategory := make(map[model.Category]*model.CategorySummary)
	for _, f := range files {
		for _, issue := range f.Issues {
			s, ok := byCategory[issue.Category]
			if !ok {
				s = &model.CategorySummary{Category: issue.Category, Severities: severityBuckets()}
				byCategory[issue.Category] = s
			}
			s.Count++
			s.Severities[issue.Severity]++
		}
	}

	summaries := make([]model.CategorySummary, 0, len(byCategory))
	for _, cat := range model.Categories {
		if s, ok := byCategory[cat]; ok {
			summaries = append(summaries, *s)
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})
	return summaries
}

func severityBuckets() map[model.Severity]int {
	buckets := make(map[model.Severity]int, len(model.Severities))
	for _, sev := range model.Severities {
		buckets[sev] = 0
	}
	return buckets
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

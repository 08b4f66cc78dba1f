package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"quality-analyzer/src/model"
)

type palette struct {
	header   func(a ...any) string
	severity map[model.Severity]func(a ...any) string
	score    func(score float64) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	good, fair, poor := mk(color.FgGreen, color.Bold), mk(color.FgYellow, color.Bold), mk(color.FgRed, color.Bold)
	return palette{
		header: mk(color.FgCyan, color.Bold),
		severity: map[model.Severity]func(a ...any) string{
			model.SeverityLow:      mk(color.FgWhite),
			model.SeverityMedium:   mk(color.FgYellow),
			model.SeverityHigh:     mk(color.FgRed),
			model.SeverityCritical: mk(color.FgMagenta, color.Bold),
		},
		score: func(score float64) string {
			s := strconv.FormatFloat(score, 'f', 2, 64)
			switch {
			case score >= 80:
				return good(s)
			case score >= 60:
				return fair(s)
			default:
				return poor(s)
			}
		},
	}
}

// writeSummary prints the overall score followed by severity, category and
// top issue tables
func writeSummary(w io.Writer, report *model.Report, colored bool) error {
	p := newPalette(colored)
	s := report.Summary

	fmt.Fprintf(w, "%s %s\n", p.header("Quality score:"), p.score(s.Score))
	fmt.Fprintf(w, "Files: %d analyzed, %d skipped | Lines of code: %d | Issues: %d\n\n",
		s.TotalFiles, s.FilesSkipped, s.LinesOfCode, s.TotalIssues)

	sevRows := make([][]string, 0, len(model.Severities))
	for i := len(model.Severities) - 1; i >= 0; i-- {
		sev := model.Severities[i]
		sevRows = append(sevRows, []string{p.severity[sev](string(sev)), strconv.Itoa(s.IssuesBySeverity[sev])})
	}
	if err := renderTable(w, []string{"Severity", "Issues"}, sevRows, true); err != nil {
		return err
	}

	if len(report.Categories) > 0 {
		catRows := make([][]string, 0, len(report.Categories))
		for _, c := range report.Categories {
			row := []string{string(c.Category), strconv.Itoa(c.Count)}
			for i := len(model.Severities) - 1; i >= 0; i-- {
				row = append(row, strconv.Itoa(c.Severities[model.Severities[i]]))
			}
			catRows = append(catRows, row)
		}
		fmt.Fprintln(w)
		if err := renderTable(w, []string{"Category", "Total", "Critical", "High", "Medium", "Low"}, catRows, true); err != nil {
			return err
		}
	}

	if len(report.TopIssues) > 0 {
		issueRows := make([][]string, 0, len(report.TopIssues))
		for _, issue := range report.TopIssues {
			issueRows = append(issueRows, []string{
				p.severity[issue.Severity](string(issue.Severity)),
				fmt.Sprintf("%s:%d", issue.Location.File, issue.Location.Line),
				issue.Rule,
				issue.Title,
			})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.header("Top issues"))
		if err := renderTable(w, []string{"Severity", "Location", "Rule", "Title"}, issueRows, false); err != nil {
			return err
		}
	}

	return nil
}

func renderTable(w io.Writer, headers []string, data [][]string, alignRight bool) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	if alignRight {
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

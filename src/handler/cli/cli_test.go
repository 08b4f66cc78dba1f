package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"quality-analyzer/src/model"
)

const tempFunctionTree = `{
  "type": "Program",
  "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 3, "column": 1}},
  "body": [{
    "type": "FunctionDeclaration",
    "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 3, "column": 1}},
    "id": {"type": "Identifier", "name": "temp", "loc": {"start": {"line": 1, "column": 9}, "end": {"line": 1, "column": 13}}},
    "params": [],
    "body": {"type": "BlockStatement", "loc": {"start": {"line": 1, "column": 16}, "end": {"line": 3, "column": 1}}, "body": []}
  }]
}`

// setupProject writes one source file with its sidecar tree and a quiet
// config file, returning both directories
func setupProject(t *testing.T) (string, string) {
	t.Helper()
	project := t.TempDir()
	src := filepath.Join(project, "app.js")
	require.NoError(t, os.WriteFile(src, []byte("function temp() {\n  return 1\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(src+".estree.json", []byte(tempFunctionTree), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "quality.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0o644))
	return project, cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	h := New()
	h.SetOutput(&stdout, &stderr)
	h.SetArgs(args)
	err := h.Execute()
	return stdout.String(), err
}

func TestAnalyze_JSONToStdout(t *testing.T) {
	project, cfgPath := setupProject(t)

	out, err := run(t, "analyze", project, "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, int64(1), gjson.Get(out, "summary.totalFiles").Int())
	assert.GreaterOrEqual(t, gjson.Get(out, "summary.totalIssues").Int(), int64(1))
	assert.Equal(t, "app.js", gjson.Get(out, "files.0.path").String())
	assert.Contains(t, gjson.Get(out, "files.0.issues.#.rule").String(), "generic-name")
}

func TestAnalyze_MinSeverityFromEnvironment(t *testing.T) {
	project, cfgPath := setupProject(t)
	t.Setenv("QUALITY_MIN_SEVERITY", "critical")

	out, err := run(t, "analyze", project, "--config", cfgPath, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gjson.Get(out, "summary.totalIssues").Int())
	assert.Equal(t, string(model.SeverityCritical), gjson.Get(out, "summary.options.minSeverity").String())
}

func TestAnalyze_WritesReportFilesAndSummary(t *testing.T) {
	project, cfgPath := setupProject(t)
	outDir := t.TempDir()

	out, err := run(t, "analyze", project, "--config", cfgPath, "--output", outDir, "--format", "markdown")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "quality-report.md"))
	assert.Contains(t, out, "Report written to")
	assert.Contains(t, out, "Quality score:")
	assert.Contains(t, out, "generic-name")
}

func TestAnalyze_ExitCodes(t *testing.T) {
	project, cfgPath := setupProject(t)

	_, err := run(t, "analyze", project, "--config", cfgPath, "--fail-under", "100")
	require.Error(t, err)
	assert.Equal(t, ExitThreshold, ExitCode(err))

	_, err = run(t, "analyze", filepath.Join(project, "missing"), "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitFatal, ExitCode(err))

	_, err = run(t, "analyze", project, "--config", cfgPath, "--detectors", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFatal, ExitCode(err))

	_, err = run(t, "analyze", project, "--config", cfgPath, "--min-severity", "urgent")
	require.Error(t, err)
	assert.Equal(t, ExitFatal, ExitCode(err))

	assert.Equal(t, ExitOK, ExitCode(nil))
}

func TestDetectorsCommand(t *testing.T) {
	_, cfgPath := setupProject(t)

	out, err := run(t, "detectors", "--config", cfgPath)
	require.NoError(t, err)
	for _, name := range []string{"complexity", "naming", "size", "duplication"} {
		assert.Contains(t, out, name)
	}
}

func TestWriteSummary_NoColor(t *testing.T) {
	report := &model.Report{
		Summary: model.ReportSummary{
			TotalFiles:       2,
			TotalIssues:      1,
			Score:            97.5,
			IssuesBySeverity: map[model.Severity]int{model.SeverityHigh: 1},
		},
		Categories: []model.CategorySummary{{
			Category:   model.CategoryNaming,
			Count:      1,
			Severities: map[model.Severity]int{model.SeverityHigh: 1},
		}},
		TopIssues: []model.Issue{{
			Category: model.CategoryNaming,
			Severity: model.SeverityHigh,
			Rule:     "generic-name",
			Title:    "Generic name temp",
			Location: model.Location{File: "app.js", Line: 1},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, report, false))

	out := buf.String()
	assert.Contains(t, out, "Quality score: 97.50")
	assert.Contains(t, out, "app.js:1")
	assert.Contains(t, out, "naming")
	assert.NotContains(t, out, "\x1b[", "no escape codes without a terminal")
}

package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
)

// branchyFunction has one if with an && test and one for loop
func branchyFunction() *ast.Node {
	test := ast.New("LogicalExpression").Lines(2, 2).
		Set("operator", "&&").
		Set("left", ident("ready", 2)).
		Set("right", ident("valid", 2))
	ifStmt := ast.New("IfStatement").Lines(2, 4).
		Set("test", test).
		Set("consequent", block(2, 4)).
		Set("alternate", nil)
	loop := ast.New("ForStatement").Lines(5, 7).
		Set("init", nil).
		Set("test", nil).
		Set("update", nil).
		Set("body", block(5, 7))
	return funcDecl("process", 1, 8, nil, ifStmt, loop)
}

func TestComplexityDetector_Thresholds(t *testing.T) {
	file := parsedFile("src/process.js", program(branchyFunction()))

	d := NewComplexityDetector(config.DefaultConfig().Detectors.Complexity)
	issues, err := d.Detect(file)
	require.NoError(t, err)
	assert.Empty(t, issues, "complexity 4 is below the default threshold")

	d.Configure(detectorConfig(config.Thresholds{config.KeyFunctionComplexity: 3, config.KeyFileComplexity: 2}))
	issues, err = d.Detect(file)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "cyclomatic-complexity", issues[0].Rule)
	assert.Equal(t, model.SeverityLow, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Location.Line)
	assert.Equal(t, "src/process.js", issues[0].Location.File)

	assert.Equal(t, "file-complexity", issues[1].Rule)
	assert.Equal(t, model.SeverityMedium, issues[1].Severity)
	assert.Equal(t, 1, issues[1].Location.Line)
}

func TestComplexitySeverity(t *testing.T) {
	tests := []struct {
		cc   int
		want model.Severity
	}{
		{9, model.SeverityLow},
		{10, model.SeverityMedium},
		{15, model.SeverityHigh},
		{19, model.SeverityHigh},
		{20, model.SeverityCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, complexitySeverity(tt.cc), "cc=%d", tt.cc)
	}
}

func TestComplexityDetector_DisabledSkipsWork(t *testing.T) {
	d := NewComplexityDetector(config.DetectorConfig{Enabled: false})
	issues, err := d.Detect(parsedFile("a.js", program(branchyFunction())))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestComplexityDetector_MalformedThresholdFallsBack(t *testing.T) {
	d := NewComplexityDetector(detectorConfig(config.Thresholds{config.KeyFunctionComplexity: "many"}))
	assert.Equal(t, config.DefaultFunctionComplexity, d.functionLimit)
	assert.Equal(t, config.DefaultFileComplexity, d.fileLimit)
}

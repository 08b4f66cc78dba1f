package detector

import (
	"fmt"

	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// ComplexityDetector detects functions and files with high cyclomatic complexity
type ComplexityDetector struct {
	BaseDetector
	functionLimit int
	fileLimit     int
}

// NewComplexityDetector creates a new complexity detector
func NewComplexityDetector(cfg config.DetectorConfig) *ComplexityDetector {
	d := &ComplexityDetector{BaseDetector: newBaseDetector("complexity")}
	d.Configure(cfg)
	return d
}

// Configure replaces the configuration and resolves thresholds
func (d *ComplexityDetector) Configure(cfg config.DetectorConfig) {
	d.BaseDetector.Configure(cfg)
	d.functionLimit = d.intThreshold(config.KeyFunctionComplexity, config.DefaultFunctionComplexity)
	d.fileLimit = d.intThreshold(config.KeyFileComplexity, config.DefaultFileComplexity)
}

// Detect runs complexity detection
func (d *ComplexityDetector) Detect(file *model.ParsedFile) ([]model.Issue, error) {
	if !d.IsEnabled() || file.AST == nil {
		return nil, nil
	}

	functions := d.provider().FunctionMetrics(file)
	util.Debug("Complexity detector: analyzing %d functions in %s", len(functions), file.Path)

	var issues []model.Issue
	total := 0
	for _, fn := range functions {
		cc := fn.CyclomaticComplexity
		total += cc
		if cc <= d.functionLimit {
			continue
		}

		issue, err := d.createCCIssue(file, fn)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}

	if len(functions) > 0 {
		mean := float64(total) / float64(len(functions))
		if mean > float64(d.fileLimit) {
			issue, err := d.finish(model.NewIssue(model.CategoryComplexity, "file-complexity").
				Severity(model.SeverityMedium).
				Title("High file complexity").
				Description("Average cyclomatic complexity is %.1f across %d functions (threshold %d)", mean, len(functions), d.fileLimit).
				Suggestion("Split the file into smaller modules with focused responsibilities").
				At(file.Path, 1, 0), file, 1, 0)
			if err != nil {
				return nil, err
			}
			issues = append(issues, issue)
		}
	}

	return issues, nil
}

func (d *ComplexityDetector) createCCIssue(file *model.ParsedFile, fn model.FunctionMetrics) (model.Issue, error) {
	cc := fn.CyclomaticComplexity

	return d.finish(model.NewIssue(model.CategoryComplexity, "cyclomatic-complexity").
		Severity(complexitySeverity(cc)).
		Title(fmt.Sprintf("High cyclomatic complexity in %s", fn.Name)).
		Description("Function %s has cyclomatic complexity %d (threshold %d): %d conditionals, %d loops, %d logical operators",
			fn.Name, cc, d.functionLimit, fn.ConditionalCount, fn.LoopCount, fn.LogicalCount).
		Suggestion(ccSuggestion(cc)).
		At(file.Path, lineOrFirst(fn.StartLine), fn.Column).
		Until(fn.EndLine, 0), file, fn.StartLine, fn.EndLine)
}

func complexitySeverity(cc int) model.Severity {
	switch {
	case cc >= 20:
		return model.SeverityCritical
	case cc >= 15:
		return model.SeverityHigh
	case cc >= 10:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func ccSuggestion(cc int) string {
	switch {
	case cc >= 20:
		return "Split into multiple smaller functions; consider a lookup table or state machine"
	case cc >= 15:
		return "Extract conditional logic into separate functions"
	default:
		return "Consider simplifying conditionals or extracting helper functions"
	}
}

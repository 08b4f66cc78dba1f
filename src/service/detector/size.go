package detector

import (
	"fmt"
	"strings"

	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// SizeDetector detects oversized files, functions, methods and classes
type SizeDetector struct {
	BaseDetector
	fileLines          int
	functionLines      int
	methodLines        int
	functionParameters int
	classLines         int
}

// NewSizeDetector creates a new size detector
func NewSizeDetector(cfg config.DetectorConfig) *SizeDetector {
	d := &SizeDetector{BaseDetector: newBaseDetector("size")}
	d.Configure(cfg)
	return d
}

// Configure replaces the configuration and resolves thresholds
func (d *SizeDetector) Configure(cfg config.DetectorConfig) {
	d.BaseDetector.Configure(cfg)
	d.fileLines = d.intThreshold(config.KeyFileLines, config.DefaultFileLines)
	d.functionLines = d.intThreshold(config.KeyFunctionLines, config.DefaultFunctionLines)
	d.methodLines = d.intThreshold(config.KeyMethodLines, config.DefaultMethodLines)
	d.functionParameters = d.intThreshold(config.KeyFunctionParameters, config.DefaultFunctionParameters)
	d.classLines = d.intThreshold(config.KeyClassLines, config.DefaultClassLines)
}

// Detect runs size detection
func (d *SizeDetector) Detect(file *model.ParsedFile) ([]model.Issue, error) {
	if !d.IsEnabled() || file.AST == nil {
		return nil, nil
	}

	var issues []model.Issue
	add := func(issue model.Issue, err error) error {
		if err != nil {
			return err
		}
		issues = append(issues, issue)
		return nil
	}

	if file.LinesOfCode > d.fileLines {
		err := add(d.finish(model.NewIssue(model.CategorySize, "file-size").
			Severity(ratioSeverity(file.LinesOfCode, d.fileLines)).
			Title("Large file").
			Description("File has %d lines of code (threshold %d)", file.LinesOfCode, d.fileLines).
			Suggestion("Split the file into smaller modules").
			At(file.Path, 1, 0), file, 1, 0))
		if err != nil {
			return nil, err
		}
	}

	for _, fn := range d.provider().FunctionMetrics(file) {
		if err := d.checkFunction(file, fn, add); err != nil {
			return nil, err
		}
	}

	for _, class := range d.provider().ClassMetrics(file) {
		if class.LineCount <= d.classLines {
			continue
		}
		err := add(d.finish(model.NewIssue(model.CategorySize, "class-size").
			Severity(ratioSeverity(class.LineCount, d.classLines)).
			Title(fmt.Sprintf("Large class %s", class.Name)).
			Description("Class %s spans %d lines with %d methods (threshold %d)", class.Name, class.LineCount, class.MethodCount, d.classLines).
			Suggestion("Extract cohesive groups of methods into separate classes").
			At(file.Path, lineOrFirst(class.StartLine), class.Column).
			Until(class.EndLine, 0), file, class.StartLine, class.EndLine))
		if err != nil {
			return nil, err
		}
	}

	util.Debug("Size detector: found %d issues in %s", len(issues), file.Path)
	return issues, nil
}

func (d *SizeDetector) checkFunction(file *model.ParsedFile, fn model.FunctionMetrics, add func(model.Issue, error) error) error {
	limit, rule, noun := d.functionLines, "function-length", "Function"
	if fn.Kind == "method" {
		limit, rule, noun = d.methodLines, "method-length", "Method"
	}

	if fn.LineCount > limit {
		err := add(d.finish(model.NewIssue(model.CategorySize, rule).
			Severity(ratioSeverity(fn.LineCount, limit)).
			Title(fmt.Sprintf("Long %s %s", strings.ToLower(noun), fn.Name)).
			Description("%s %s spans %d lines (threshold %d)", noun, fn.Name, fn.LineCount, limit).
			Suggestion("Extract logical sections into well-named helper functions").
			At(file.Path, lineOrFirst(fn.StartLine), fn.Column).
			Until(fn.EndLine, 0), file, fn.StartLine, fn.EndLine))
		if err != nil {
			return err
		}
	}

	if fn.ParameterCount > d.functionParameters {
		err := add(d.finish(model.NewIssue(model.CategorySize, "parameter-count").
			Severity(ratioSeverity(fn.ParameterCount, d.functionParameters)).
			Title(fmt.Sprintf("Too many parameters in %s", fn.Name)).
			Description("%s %s takes %d parameters (threshold %d)", noun, fn.Name, fn.ParameterCount, d.functionParameters).
			Suggestion("Group related parameters into an options object").
			At(file.Path, lineOrFirst(fn.StartLine), fn.Column), file, fn.StartLine, fn.StartLine))
		if err != nil {
			return err
		}
	}

	return nil
}


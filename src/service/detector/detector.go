package detector

import (
	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/service/metrics"
	"quality-analyzer/src/util"
)

// Detector is the interface for all quality detectors
type Detector interface {
	// Name returns the detector name
	Name() string

	// IsEnabled returns whether the detector is enabled
	IsEnabled() bool

	// Configure replaces the detector configuration wholesale
	Configure(cfg config.DetectorConfig)

	// Detect inspects one parsed file and returns found issues
	Detect(file *model.ParsedFile) ([]model.Issue, error)
}

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	name         string
	cfg          config.DetectorConfig
	snippetLines int
	metrics      *metrics.Provider
}

func newBaseDetector(name string) BaseDetector {
	return BaseDetector{name: name}
}

// Name returns the detector name
func (b *BaseDetector) Name() string {
	return b.name
}

// IsEnabled returns whether the detector is enabled
func (b *BaseDetector) IsEnabled() bool {
	return b.cfg.Enabled
}

// Configure stores cfg
func (b *BaseDetector) Configure(cfg config.DetectorConfig) {
	b.cfg = cfg
}

// SetSnippetLines attaches up to n source lines to every issue (0 disables)
func (b *BaseDetector) SetSnippetLines(n int) {
	b.snippetLines = n
}

// SetMetricsProvider shares a metrics cache with other detectors
func (b *BaseDetector) SetMetricsProvider(p *metrics.Provider) {
	b.metrics = p
}

func (b *BaseDetector) provider() *metrics.Provider {
	if b.metrics == nil {
		b.metrics = metrics.NewProvider()
	}
	return b.metrics
}

// intThreshold reads a threshold, logging and falling back on bad values
func (b *BaseDetector) intThreshold(key string, def int) int {
	v, err := b.cfg.Thresholds.Int(key, def)
	if err != nil {
		util.Warn("Detector %s: %v, using default %d", b.name, err, def)
	}
	return v
}

func (b *BaseDetector) ratioThreshold(key string, def float64) float64 {
	v, err := b.cfg.Thresholds.Ratio(key, def)
	if err != nil {
		util.Warn("Detector %s: %v, using default %g", b.name, err, def)
	}
	return v
}

// finish validates a staged issue and attaches the snippet for start..end
func (b *BaseDetector) finish(ib *model.IssueBuilder, file *model.ParsedFile, start, end int) (model.Issue, error) {
	if b.snippetLines > 0 && start > 0 {
		if end < start || end-start+1 > b.snippetLines {
			end = start + b.snippetLines - 1
		}
		ib.Snippet(file.Snippet(start, end))
	}
	return ib.Build()
}

// lineOrFirst anchors nodes without a location at line 1
func lineOrFirst(line int) int {
	return max(line, 1)
}

// ratioSeverity grades a measured value against its limit
func ratioSeverity(actual, limit int) model.Severity {
	if limit <= 0 {
		return model.SeverityCritical
	}
	ratio := float64(actual) / float64(limit)
	switch {
	case ratio >= 3:
		return model.SeverityCritical
	case ratio >= 2:
		return model.SeverityHigh
	case ratio >= 1.5:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// FilterBySeverity drops issues below min
func FilterBySeverity(issues []model.Issue, min model.Severity) []model.Issue {
	if !min.Valid() || min == model.SeverityLow {
		return issues
	}

	filtered := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.AtLeast(min) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

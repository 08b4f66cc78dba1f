package detector

import (
	"time"

	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// Runner runs a fixed set of detectors over parsed files.
// A failing detector never affects the others.
type Runner struct {
	detectors   []Detector
	minSeverity model.Severity
}

// NewRunner creates a runner over detectors, dropping issues below minSeverity
func NewRunner(detectors []Detector, minSeverity model.Severity) *Runner {
	util.Debug("Detector runner initialized with %d detectors", len(detectors))
	for _, d := range detectors {
		status := "disabled"
		if d.IsEnabled() {
			status = "enabled"
		}
		util.Debug("  - %s: %s", d.Name(), status)
	}

	return &Runner{
		detectors:   detectors,
		minSeverity: minSeverity,
	}
}

// Detectors returns the detectors the runner was built with
func (r *Runner) Detectors() []Detector {
	return r.detectors
}

// Run executes every enabled detector over file in order and returns the
// combined issues
func (r *Runner) Run(file *model.ParsedFile) []model.Issue {
	startTime := time.Now()

	var all []model.Issue
	for _, d := range r.detectors {
		if !d.IsEnabled() {
			util.Debug("Skipping disabled detector: %s", d.Name())
			continue
		}
		all = append(all, r.runGuarded(d, file)...)
	}

	util.Debug("Detection complete for %s: %d issues (took %v)", file.Path, len(all), time.Since(startTime))
	return FilterBySeverity(all, r.minSeverity)
}

// runGuarded turns a detector error or panic into a warning and no issues
func (r *Runner) runGuarded(d Detector, file *model.ParsedFile) (issues []model.Issue) {
	defer func() {
		if rec := recover(); rec != nil {
			util.Warn("Detector %s panicked on %s: %v", d.Name(), file.Path, rec)
			issues = nil
		}
	}()

	found, err := d.Detect(file)
	if err != nil {
		util.Warn("Detector %s failed on %s: %v", d.Name(), file.Path, err)
		return nil
	}
	return found
}

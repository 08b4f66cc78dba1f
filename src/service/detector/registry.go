package detector

import (
	"errors"
	"fmt"

	"quality-analyzer/src/config"
	"quality-analyzer/src/service/metrics"
)

var (
	// ErrDuplicateDetector is returned when a name is registered twice
	ErrDuplicateDetector = errors.New("detector already registered")

	// ErrUnknownDetector is returned when a requested name is not registered
	ErrUnknownDetector = errors.New("unknown detector")
)

// Resetter is implemented by detectors that keep state across files
type Resetter interface {
	Reset()
}

// Registry is an ordered table of detectors keyed by name
type Registry struct {
	detectors []Detector
	byName    map[string]Detector
	metrics   *metrics.Provider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Detector)}
}

// NewDefaultRegistry registers the built-in detectors configured from cfg
func NewDefaultRegistry(cfg *config.Config) *Registry {
	complexity := NewComplexityDetector(cfg.Detectors.Complexity)
	naming := NewNamingDetector(cfg.Detectors.Naming)
	size := NewSizeDetector(cfg.Detectors.Size)
	duplication := NewDuplicationDetector(cfg.Detectors.Duplication)

	snippetLines := 0
	if cfg.Output.IncludeCodeSnippets {
		snippetLines = cfg.Output.SnippetLines
	}

	r := NewRegistry()
	r.metrics = metrics.NewProvider()
	for _, d := range []interface {
		Detector
		SetSnippetLines(int)
		SetMetricsProvider(*metrics.Provider)
	}{complexity, naming, size, duplication} {
		d.SetSnippetLines(snippetLines)
		d.SetMetricsProvider(r.metrics)
		// names are distinct
		_ = r.Register(d)
	}
	return r
}

// Register adds a detector at the end of the table
func (r *Registry) Register(d Detector) error {
	if _, ok := r.byName[d.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDetector, d.Name())
	}
	r.byName[d.Name()] = d
	r.detectors = append(r.detectors, d)
	return nil
}

// Get returns a detector by name
func (r *Registry) Get(name string) (Detector, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns the registered names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.detectors))
	for i, d := range r.detectors {
		names[i] = d.Name()
	}
	return names
}

// All returns every registered detector in registration order
func (r *Registry) All() []Detector {
	return append([]Detector(nil), r.detectors...)
}

// Enabled returns the enabled detectors in registration order
func (r *Registry) Enabled() []Detector {
	var out []Detector
	for _, d := range r.detectors {
		if d.IsEnabled() {
			out = append(out, d)
		}
	}
	return out
}

// Select returns the named detectors in registration order. An empty
// request selects every enabled detector.
func (r *Registry) Select(names []string) ([]Detector, error) {
	if len(names) == 0 {
		return r.Enabled(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := r.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
		}
		wanted[name] = true
	}

	var out []Detector
	for _, d := range r.detectors {
		if wanted[d.Name()] && d.IsEnabled() {
			out = append(out, d)
		}
	}
	return out, nil
}

// ResetAll clears the state of every stateful detector and the shared
// metrics cache
func (r *Registry) ResetAll() {
	if r.metrics != nil {
		r.metrics.Reset()
	}
	for _, d := range r.detectors {
		if rs, ok := d.(Resetter); ok {
			rs.Reset()
		}
	}
}

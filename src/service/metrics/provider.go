package metrics

import (
	"sync"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// Provider measures functions and classes of a syntax tree and caches the
// result so detectors inspecting the same file share one traversal.
// Only the most recent tree is kept; files are analyzed one at a time.
type Provider struct {
	mu        sync.RWMutex
	root      *ast.Node
	functions []model.FunctionMetrics
	classes   []model.ClassMetrics
}

// NewProvider creates a new metrics provider
func NewProvider() *Provider {
	return &Provider{}
}

// FunctionMetrics returns the metrics of every function-like node in file
func (p *Provider) FunctionMetrics(file *model.ParsedFile) []model.FunctionMetrics {
	functions, _ := p.measure(file)
	return functions
}

// ClassMetrics returns the metrics of every class in file
func (p *Provider) ClassMetrics(file *model.ParsedFile) []model.ClassMetrics {
	_, classes := p.measure(file)
	return classes
}

func (p *Provider) measure(file *model.ParsedFile) ([]model.FunctionMetrics, []model.ClassMetrics) {
	if file == nil || file.AST == nil {
		return nil, nil
	}

	p.mu.RLock()
	if p.root == file.AST {
		defer p.mu.RUnlock()
		util.Debug("Returning cached metrics for %s", file.Path)
		return p.functions, p.classes
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if p.root == file.AST {
		return p.functions, p.classes
	}

	p.root = file.AST
	p.functions = Functions(file.AST)
	p.classes = Classes(file.AST)
	util.Debug("Measured %d functions and %d classes in %s", len(p.functions), len(p.classes), file.Path)

	return p.functions, p.classes
}

// Reset drops the cached tree
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root = nil
	p.functions = nil
	p.classes = nil
}

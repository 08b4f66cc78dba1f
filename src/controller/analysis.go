package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/service/detector"
	"quality-analyzer/src/service/parser"
	"quality-analyzer/src/service/report"
	"quality-analyzer/src/util"
)

var (
	// ErrPathNotFound is returned when the analysis target does not exist
	ErrPathNotFound = errors.New("path not found")

	// ErrNoDetectors is returned when no detector can run for the request
	ErrNoDetectors = errors.New("no detectors enabled")
)

// AnalysisController orchestrates the analysis of a source tree
type AnalysisController struct {
	cfg      *config.Config
	parser   parser.Parser
	registry *detector.Registry
	now      func() time.Time
}

// NewAnalysisController creates a new analysis controller. The controller
// owns its detectors, including the shared duplication index.
func NewAnalysisController(cfg *config.Config, p parser.Parser) *AnalysisController {
	return &AnalysisController{
		cfg:      cfg,
		parser:   p,
		registry: detector.NewDefaultRegistry(cfg),
		now:      time.Now,
	}
}

// Registry returns the detectors available to the controller
func (c *AnalysisController) Registry() *detector.Registry {
	return c.registry
}

// AnalyzeRequest represents a request to analyze a file or directory
type AnalyzeRequest struct {
	Path      string
	Detectors []string // Optional: specific detectors to run (empty = all enabled)
}

// Analyze runs the full analysis pipeline. Only an invalid request fails
// the run; unreadable files and failing detectors are logged and skipped.
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) (*model.Report, error) {
	startTime := time.Now()
	util.Info("Starting analysis for path: %s", req.Path)

	info, err := os.Stat(req.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, req.Path)
		}
		return nil, fmt.Errorf("inspecting %s: %w", req.Path, err)
	}

	detectors, err := c.registry.Select(req.Detectors)
	if err != nil {
		return nil, err
	}
	if len(detectors) == 0 || len(c.cfg.Analysis.Languages) == 0 {
		return nil, fmt.Errorf("%w for languages %v", ErrNoDetectors, c.cfg.Analysis.Languages)
	}

	minSeverity, err := model.ParseSeverity(c.cfg.Severity.MinSeverity)
	if err != nil {
		util.Warn("Invalid min_severity %q, reporting all issues", c.cfg.Severity.MinSeverity)
		minSeverity = model.SeverityLow
	}

	c.registry.ResetAll()

	files, err := util.DiscoverFiles(req.Path, util.DiscoverOptions{
		Languages:   c.cfg.Analysis.Languages,
		Exclusions:  util.NewExclusionMatcher(c.cfg.Exclusions),
		MaxFileSize: c.cfg.Analysis.MaxFileSize,
	})
	if err != nil {
		return nil, err
	}
	util.Info("Discovered %d files", len(files))

	names := make([]string, len(detectors))
	for i, d := range detectors {
		names[i] = d.Name()
	}
	builder := report.NewBuilder(model.AnalysisOptions{
		Path:        req.Path,
		Detectors:   names,
		Languages:   c.cfg.Analysis.Languages,
		Concurrency: c.batchSize(),
		MinSeverity: minSeverity,
	})
	runner := detector.NewRunner(detectors, minSeverity)

	root := ""
	if info.IsDir() {
		root = req.Path
	}

	for start := 0; start < len(files); start += c.batchSize() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := files[start:min(start+c.batchSize(), len(files))]
		parsed := c.parseBatch(ctx, root, batch)

		// Detection runs here, in file order, so the duplication index is
		// only ever touched by this goroutine.
		for _, pf := range parsed {
			if pf == nil {
				_ = builder.SkipFile()
				continue
			}

			fa := model.FileAnalysis{
				Path:        pf.Path,
				LinesOfCode: pf.LinesOfCode,
				Issues:      runner.Run(pf),
			}
			if err := builder.AddFile(fa); err != nil {
				util.Warn("Dropping results for %s: %v", pf.Path, err)
				_ = builder.SkipFile()
			}
		}
		util.Debug("Batch done: %d/%d files", min(start+len(batch), len(files)), len(files))
	}

	if d, ok := c.registry.Get("duplication"); ok {
		if dup, ok := d.(*detector.DuplicationDetector); ok {
			stats := dup.Stats()
			util.Debug("Duplication index: %d blocks from %d files", stats.Blocks, stats.Files)
		}
	}

	result, err := builder.Build(c.now().UTC())
	if err != nil {
		return nil, err
	}

	util.Info("Analysis complete: %d files, %d issues, score %.2f (took %v)",
		result.Summary.TotalFiles, result.Summary.TotalIssues, result.Summary.Score, time.Since(startTime))
	return result, nil
}

func (c *AnalysisController) batchSize() int {
	return max(c.cfg.Analysis.Concurrency, 1)
}

// parseBatch reads and parses a batch concurrently. Results keep batch
// order; a file that failed is nil.
func (c *AnalysisController) parseBatch(ctx context.Context, root string, batch []string) []*model.ParsedFile {
	results := make([]*model.ParsedFile, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(batch))
	for i, path := range batch {
		i, path := i, path
		g.Go(func() error {
			pf, err := c.parseFile(gctx, root, path)
			if err != nil {
				util.Warn("Skipping %s: %v", path, err)
				return nil
			}
			results[i] = pf
			return nil
		})
	}
	_ = g.Wait()

	return results
}

type parseResult struct {
	tree *ast.Node
	err  error
}

// parseFile enforces the per-file timeout. A parser that ignores its
// context is abandoned when the deadline passes.
func (c *AnalysisController) parseFile(ctx context.Context, root, path string) (*model.ParsedFile, error) {
	if timeout := c.cfg.Analysis.FileTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	done := make(chan parseResult, 1)
	go func() {
		tree, err := c.parser.Parse(ctx, path, content)
		done <- parseResult{tree: tree, err: err}
	}()

	var res parseResult
	select {
	case res = <-done:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, parser.ErrTimeout
		}
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}
	if res.tree == nil {
		return nil, errors.New("parser returned no tree")
	}

	text := string(content)
	return &model.ParsedFile{
		Path:        displayPath(root, path),
		Language:    util.LanguageFor(path),
		Content:     text,
		AST:         res.tree,
		LinesOfCode: parser.CountLinesOfCode(text),
	}, nil
}

// displayPath is the slash-separated path relative to the analyzed directory
func displayPath(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

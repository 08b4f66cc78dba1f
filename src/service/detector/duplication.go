package detector

import (
	"fmt"
	"math"
	"sort"

	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// DuplicationStats reports the size of the accumulated block index
type DuplicationStats struct {
	Blocks int `json:"blocks"`
	Files  int `json:"files"`
}

// DuplicationDetector finds duplicated blocks across files. It accumulates
// blocks from every file it sees until Reset, so one instance must serve a
// whole run and must only be called from one goroutine at a time.
type DuplicationDetector struct {
	BaseDetector
	minLines  int
	minTokens int
	threshold float64
	blocks    []*CodeBlock
	byLength  map[int][]*CodeBlock
	processed map[string]bool
	nextSeq   int
}

// NewDuplicationDetector creates a new duplication detector with an empty index
func NewDuplicationDetector(cfg config.DetectorConfig) *DuplicationDetector {
	d := &DuplicationDetector{BaseDetector: newBaseDetector("duplication")}
	d.Configure(cfg)
	d.Reset()
	return d
}

// Configure replaces the configuration and resolves thresholds. The
// accumulated index is kept.
func (d *DuplicationDetector) Configure(cfg config.DetectorConfig) {
	d.BaseDetector.Configure(cfg)
	d.minLines = d.intThreshold(config.KeyMinLines, config.DefaultMinLines)
	d.minTokens = d.intThreshold(config.KeyMinTokens, config.DefaultMinTokens)
	d.threshold = d.ratioThreshold(config.KeySimilarityThreshold, config.DefaultSimilarityThreshold)
}

// Reset clears every accumulated block and processed file
func (d *DuplicationDetector) Reset() {
	d.blocks = nil
	d.byLength = make(map[int][]*CodeBlock)
	d.processed = make(map[string]bool)
	d.nextSeq = 0
}

// Stats returns the current index size
func (d *DuplicationDetector) Stats() DuplicationStats {
	return DuplicationStats{Blocks: len(d.blocks), Files: len(d.processed)}
}

// Detect compares the file's blocks against blocks from earlier files, then
// adds them to the index
func (d *DuplicationDetector) Detect(file *model.ParsedFile) ([]model.Issue, error) {
	if !d.IsEnabled() || file.AST == nil {
		return nil, nil
	}
	if d.processed[file.Path] {
		util.Debug("Duplication detector: %s already indexed, skipping", file.Path)
		return nil, nil
	}

	blocks := extractBlocks(file.Path, file.AST, d.minLines, d.minTokens)
	util.Debug("Duplication detector: %d candidate blocks in %s", len(blocks), file.Path)

	var (
		issues   []model.Issue
		reported = make(map[string]bool)
	)
	for _, block := range blocks {
		for _, other := range d.candidates(block) {
			if other.File == block.File {
				continue
			}

			sim := similarity(block, other)
			if sim < d.threshold {
				continue
			}

			key := pairKey(blockKey(block), blockKey(other))
			if reported[key] {
				continue
			}
			reported[key] = true

			issue, err := d.createDuplicationIssue(file, block, other, sim)
			if err != nil {
				return nil, err
			}
			issues = append(issues, issue)
		}
	}

	for _, block := range blocks {
		d.index(block)
	}
	d.processed[file.Path] = true

	util.Debug("Duplication detector: found %d duplicate pairs in %s", len(issues), file.Path)
	return issues, nil
}

func (d *DuplicationDetector) index(b *CodeBlock) {
	b.seq = d.nextSeq
	d.nextSeq++
	d.blocks = append(d.blocks, b)
	d.byLength[len(b.Tokens)] = append(d.byLength[len(b.Tokens)], b)
}

// candidates returns indexed blocks that can reach the threshold, in index
// order. Shared distinct tokens never exceed the shorter stream, so a block
// whose length ratio is below the threshold can be skipped.
func (d *DuplicationDetector) candidates(b *CodeBlock) []*CodeBlock {
	if d.threshold <= 0 {
		return d.blocks
	}

	n := float64(len(b.Tokens))
	lo := int(math.Ceil(n*d.threshold - 1e-9))
	hi := int(math.Floor(n/d.threshold + 1e-9))

	var out []*CodeBlock
	for length := lo; length <= hi; length++ {
		out = append(out, d.byLength[length]...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (d *DuplicationDetector) createDuplicationIssue(file *model.ParsedFile, block, other *CodeBlock, sim float64) (model.Issue, error) {
	lines := min(block.Lines(), other.Lines())

	return d.finish(model.NewIssue(model.CategoryDuplication, "duplicate-code").
		Severity(duplicationSeverity(sim, lines)).
		Title("Duplicated code block").
		Description("Lines %d-%d are %.0f%% similar to %s:%d-%d (%d duplicated lines)",
			block.StartLine, block.EndLine, sim*100, other.File, other.StartLine, other.EndLine, lines).
		Suggestion("Extract the common logic into a shared function").
		At(file.Path, lineOrFirst(block.StartLine), 0).
		Until(block.EndLine, 0), file, block.StartLine, block.EndLine)
}

func duplicationSeverity(sim float64, lines int) model.Severity {
	switch {
	case sim >= 0.95 && lines >= 20:
		return model.SeverityCritical
	case sim >= 0.90 && lines >= 15:
		return model.SeverityHigh
	case sim >= 0.85 && lines >= 10:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// blockKey identifies a block by its region. A function and its body span
// the same lines and share a key, so one region yields one issue.
func blockKey(b *CodeBlock) string {
	return fmt.Sprintf("%s:%d-%d", b.File, b.StartLine, b.EndLine)
}

func pairKey(id1, id2 string) string {
	if id1 < id2 {
		return id1 + "|" + id2
	}
	return id2 + "|" + id1
}

package util

import (
	"path/filepath"
	"regexp"
	"strings"

	"quality-analyzer/src/config"
)

// ExclusionMatcher matches file paths against exclusion patterns
type ExclusionMatcher struct {
	files        map[string]bool
	filePatterns []*regexp.Regexp
}

// NewExclusionMatcher creates a new exclusion matcher from config.
// Invalid patterns are logged and ignored.
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	m := &ExclusionMatcher{files: make(map[string]bool, len(cfg.Files))}

	for _, f := range cfg.Files {
		m.files[filepath.ToSlash(filepath.Clean(f))] = true
	}

	for _, p := range cfg.FilePatterns {
		re, err := compileGlob(p)
		if err != nil {
			Warn("Ignoring invalid exclusion pattern %q: %v", p, err)
			continue
		}
		m.filePatterns = append(m.filePatterns, re)
	}

	return m
}

// Matches checks if a (slash-separated, relative) path should be excluded
func (m *ExclusionMatcher) Matches(path string) bool {
	path = filepath.ToSlash(path)
	if m.files[path] {
		return true
	}

	for _, re := range m.filePatterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// MatchGlob matches a path against a glob pattern supporting ** segments
func MatchGlob(pattern, path string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(filepath.ToSlash(path))
}

// compileGlob converts a glob into an anchored regexp. "**/" matches zero or
// more directories, "**" anything, "*" and "?" stay within one segment.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	pattern = filepath.ToSlash(pattern)

	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			sb.WriteString("(?:.*/)?")
			i += 2
		case strings.HasPrefix(pattern[i:], "**"):
			sb.WriteString(".*")
			i++
		case c == '*':
			sb.WriteString("[^/]*")
		case c == '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	sb.WriteString("$")

	return regexp.Compile(sb.String())
}

package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var languageByExt = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".mts": "typescript",
	".cts": "typescript",
}

// LanguageFor returns the language of a source file, or "" if unsupported
func LanguageFor(path string) string {
	return languageByExt[strings.ToLower(filepath.Ext(path))]
}

// DiscoverOptions controls which files DiscoverFiles returns
type DiscoverOptions struct {
	Languages   []string
	Exclusions  *ExclusionMatcher
	MaxFileSize int64
}

// DiscoverFiles returns the analyzable files under root in lexical order.
// A root that is itself a file is returned as-is when its language is wanted.
func DiscoverFiles(root string, opts DiscoverOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(opts.Languages))
	for _, lang := range opts.Languages {
		wanted[strings.ToLower(lang)] = true
	}
	accept := func(path string, size int64) bool {
		lang := LanguageFor(path)
		if lang == "" || (len(wanted) > 0 && !wanted[lang]) {
			return false
		}
		if opts.MaxFileSize > 0 && size > opts.MaxFileSize {
			Debug("Skipping %s: %d bytes exceeds max file size", path, size)
			return false
		}
		return true
	}

	if !info.IsDir() {
		if accept(root, info.Size()) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			Warn("Skipping %s: %v", path, walkErr)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || opts.Exclusions != nil && opts.Exclusions.Matches(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.Exclusions != nil && opts.Exclusions.Matches(rel) {
			return nil
		}

		fi, infoErr := d.Info()
		if infoErr != nil || !fi.Mode().IsRegular() {
			return nil
		}
		if accept(path, fi.Size()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}

package watcher

import (
	"path/filepath"
	"strings"
)

// DocumentExt is the extension of files the watcher hands over.
const DocumentExt = ".pdf"

// DefaultIgnorePatterns returns the patterns of temporary files to skip.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.download",
		"*.crdownload", // Chrome partial downloads
		"*.partial",
		".~*", // lock files such as .~lock
		"~$*", // Office owner files
		".*",  // hidden files
	}
}

// Filter decides which paths are handed over.
type Filter struct {
	patterns []string
}

// NewFilter creates a Filter. If patterns is empty, DefaultIgnorePatterns
// is used.
func NewFilter(patterns []string) *Filter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &Filter{patterns: append([]string(nil), patterns...)}
}

// Accept reports whether path names a PDF that matches no ignore pattern.
// Only the base name is inspected.
func (f *Filter) Accept(path string) bool {
	name := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(name), DocumentExt) {
		return false
	}
	return !f.Ignored(name)
}

// Ignored reports whether the base name of path matches an ignore pattern.
// Patterns use filepath.Match syntax; a bare extension such as ".tmp" also
// matches as a case-insensitive suffix.
func (f *Filter) Ignored(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
		if strings.HasPrefix(pattern, ".") && !strings.ContainsAny(pattern, "*?[") {
			if strings.HasSuffix(strings.ToLower(name), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// Patterns returns a copy of the ignore patterns.
func (f *Filter) Patterns() []string {
	return append([]string(nil), f.patterns...)
}

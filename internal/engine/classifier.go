package engine

import (
	"strings"

	"repo-summarizer/internal/git/types"
)

// binarySniffLen bounds how much content the null-byte probe inspects.
const binarySniffLen = 8000

// ShouldSkip reports whether a snapshot entry is excluded from context
// assembly. Pure: the decision depends only on the entry and the config.
//
// A path is skipped when any directory segment matches the skip-directory set
// or looks cache-like, when the filename is a known lock file or carries a
// minified/source-map suffix, or when the content looks binary. Files whose
// content the fetcher could not resolve are skipped here as well.
func ShouldSkip(f types.RepoFile, cfg *Config) bool {
	if f.IsDir {
		return true
	}
	segments := splitPath(f.Path)
	if len(segments) == 0 {
		return true
	}

	// Directory-level skip propagates to every descendant: check the full
	// segment chain, not just the leaf.
	for _, seg := range segments[:len(segments)-1] {
		if isSkipDir(seg, cfg) {
			return true
		}
	}

	base := strings.ToLower(segments[len(segments)-1])
	if cfg.LockFiles[base] {
		return true
	}
	for _, suffix := range cfg.SkipSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	if !f.ContentOK {
		return true
	}
	return looksBinary(base, f.Content, cfg)
}

// isSkipDir reports whether one directory segment is in the skip set or
// matches a cache-like suffix. Case-insensitive.
func isSkipDir(segment string, cfg *Config) bool {
	lower := strings.ToLower(segment)
	if cfg.SkipDirs[lower] {
		return true
	}
	for _, suffix := range cfg.CacheDirSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// looksBinary is a best-effort probe: extension denylist plus a null byte in
// a content sample. False negatives are acceptable.
func looksBinary(lowerBase, content string, cfg *Config) bool {
	if cfg.BinaryExtensions[extension(lowerBase)] {
		return true
	}
	sample := content
	if len(sample) > binarySniffLen {
		sample = sample[:binarySniffLen]
	}
	return strings.IndexByte(sample, 0) >= 0
}

// splitPath returns the normalized path segments (directories plus the final
// file name), dropping empty segments.
func splitPath(path string) []string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	parts := strings.Split(normalized, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// extension returns the lowercased extension of base including the dot, or ""
// when there is none. For names like archive.tar.gz the last extension wins.
func extension(base string) string {
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		return base[idx:]
	}
	return ""
}

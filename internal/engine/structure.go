package engine

import (
	"fmt"
	"sort"
	"strings"
)

// BuildStructureText renders the synthetic structure entry: an indented tree
// of every kept path, wrapped as the leading section of the context. The
// entry count is capped so enormous repositories cannot crowd out content.
func BuildStructureText(paths []string, cfg *Config) string {
	var b strings.Builder
	b.WriteString("## Repository structure\n\n```\n")
	b.WriteString(directoryTree(paths, cfg.StructureMaxEntries))
	b.WriteString("\n```")
	return b.String()
}

// directoryTree lists sorted paths with two-space indentation per directory
// level. Directory lines are emitted once, the first time a path descends
// into them.
func directoryTree(paths []string, maxEntries int) string {
	if len(paths) == 0 {
		return "(no files)"
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	listed := sorted
	if maxEntries > 0 && len(sorted) > maxEntries {
		listed = sorted[:maxEntries]
	}

	seen := make(map[string]bool)
	var lines []string
	for _, path := range listed {
		segments := splitPath(path)
		if len(segments) == 0 {
			continue
		}
		prefix := ""
		for i, dir := range segments[:len(segments)-1] {
			key := strings.Join(segments[:i+1], "/")
			if !seen[key] {
				seen[key] = true
				lines = append(lines, prefix+dir+"/")
			}
			prefix += "  "
		}
		lines = append(lines, prefix+segments[len(segments)-1])
	}
	if len(listed) < len(sorted) {
		lines = append(lines, fmt.Sprintf("... and %d more files", len(sorted)-len(listed)))
	}
	return strings.Join(lines, "\n")
}

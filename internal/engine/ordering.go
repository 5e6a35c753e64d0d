package engine

import (
	"sort"
	"strings"
)

// Compare establishes the render order of two candidates within a tier:
// depth ascending, then extension group rank, then lexical path order. The
// final key makes the order total, so identical inputs always render
// identically.
func Compare(a, b Candidate, cfg *Config) int {
	if a.Depth != b.Depth {
		if a.Depth < b.Depth {
			return -1
		}
		return 1
	}
	ga, gb := groupRank(a.Path, cfg), groupRank(b.Path, cfg)
	if ga != gb {
		if ga < gb {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Path, b.Path)
}

// SortCandidates orders candidates in place using Compare.
func SortCandidates(candidates []Candidate, cfg *Config) {
	sort.Slice(candidates, func(i, j int) bool {
		return Compare(candidates[i], candidates[j], cfg) < 0
	})
}

// groupRank returns the ordering group of a path's extension. Extensions
// outside the configured grouping table sort after all groups.
func groupRank(path string, cfg *Config) int {
	segments := splitPath(path)
	if len(segments) == 0 {
		return cfg.GroupCount
	}
	ext := extension(strings.ToLower(segments[len(segments)-1]))
	if rank, ok := cfg.GroupRanks[ext]; ok {
		return rank
	}
	return cfg.GroupCount
}

package engine

import "strings"

// AssignTier maps a kept path to its priority tier. README-style names and
// key project manifests render before everything else. The synthetic
// structure tier is never produced here; it is built once from the full set
// of kept paths.
func AssignTier(path string, cfg *Config) Tier {
	segments := splitPath(path)
	if len(segments) == 0 {
		return TierOther
	}
	base := strings.ToLower(segments[len(segments)-1])

	for _, prefix := range cfg.PriorityPrefixes {
		if strings.HasPrefix(base, prefix) {
			return TierHighPriority
		}
	}
	if cfg.PriorityFiles[base] {
		return TierHighPriority
	}
	return TierOther
}

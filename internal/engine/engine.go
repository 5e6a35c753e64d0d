// Package engine assembles a bounded text context from a repository snapshot.
//
// The pipeline is classify → assign tier → order → allocate → render, one
// synchronous pass over a fully materialized file list. The engine performs
// no I/O, holds no mutable shared state, and is safe to invoke concurrently
// for independent requests.
package engine

import (
	"log/slog"

	"repo-summarizer/internal/git/types"
)

// BuildContext compresses a repository snapshot into a single bounded
// context blob.
func BuildContext(files []types.RepoFile, cfg *Config) *Blob {
	var high, other []Candidate
	var paths []string

	for _, f := range files {
		if ShouldSkip(f, cfg) {
			continue
		}
		c := Candidate{
			Path:      f.Path,
			Depth:     f.Depth,
			SizeBytes: f.SizeBytes,
			Content:   f.Content,
			Tier:      AssignTier(f.Path, cfg),
		}
		paths = append(paths, c.Path)
		if c.Tier == TierHighPriority {
			high = append(high, c)
		} else {
			other = append(other, c)
		}
	}

	SortCandidates(high, cfg)
	SortCandidates(other, cfg)

	structureText := BuildStructureText(paths, cfg)
	res := Allocate(structureText, [][]Candidate{high, other}, cfg)
	blob := Render(res, cfg)

	slog.Debug("Context assembled",
		"candidates", len(paths),
		"included", blob.IncludedCount,
		"truncated", blob.TruncatedCount,
		"omitted", blob.OmittedCount,
		"omitted_bytes", blob.OmittedBytesEstimate,
		"chars", len(blob.Text),
		"limit", blob.LimitChars)

	return blob
}

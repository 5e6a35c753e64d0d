package engine

import (
	"fmt"
	"strings"
)

// Markup shared between the allocator and the renderer. The allocator charges
// exactly the characters the renderer writes, so the two must agree on these.
const truncationMarker = "\n\n[... truncated ...]"

var tierHeadings = map[Tier]string{
	TierHighPriority: "\n\n## Key files",
	TierOther:        "\n\n## Additional files",
}

// fileHeader returns the per-file header that precedes a file's content.
func fileHeader(path string) string {
	return "\n\n### " + path + "\n\n"
}

// omissionNote renders the trailing summary of what was left out.
func omissionNote(om Omission) string {
	return fmt.Sprintf("\n\n(%d files omitted due to context limit, ~%d bytes.)", om.OmittedCount, om.OmittedBytesEstimate)
}

// Render concatenates the allocated sections into the final context blob:
// structure block, per-tier file sections with headers and truncation
// markers, and the omission note when anything was left out. The text length
// is already bounded by the allocator; nothing is cut here.
func Render(res *AllocationResult, cfg *Config) *Blob {
	var b strings.Builder
	b.WriteString(res.StructureText)

	currentTier := TierStructure
	for _, section := range res.Sections {
		if section.Tier != currentTier {
			currentTier = section.Tier
			if heading, ok := tierHeadings[currentTier]; ok {
				b.WriteString(heading)
			}
		}
		b.WriteString(fileHeader(section.Path))
		b.WriteString(section.Content)
		if section.Truncated {
			b.WriteString(truncationMarker)
		}
	}

	if res.Omission.OmittedCount > 0 {
		b.WriteString(omissionNote(res.Omission))
	}

	return &Blob{
		Text:                 b.String(),
		IncludedCount:        res.IncludedCount,
		TruncatedCount:       res.TruncatedCount,
		OmittedCount:         res.Omission.OmittedCount,
		OmittedBytesEstimate: res.Omission.OmittedBytesEstimate,
		LimitChars:           cfg.TotalLimit,
	}
}

package engine

import "unicode/utf8"

// Allocate walks the tier-ordered candidates against a shrinking character
// budget and decides per-file inclusion, truncation, or omission.
//
// When the candidate set cannot be rendered losslessly, the maximum possible
// omission note length is reserved out of the budget before anything else is
// admitted, including the structure text, which is cut back if the note
// would not fit after it. Every character the renderer will write (tier
// headings, file headers, content, truncation markers) is then charged
// against what remains, so the assembled text stays within the limit by
// construction. Two pathological cases cannot satisfy the ceiling and leave
// the note trailing past it: a structure text that alone exceeds the limit
// (cut to the limit, every candidate omitted), and a limit smaller than the
// omission note itself. Once a candidate fails to fit, all remaining
// candidates are omitted, but the scan continues so the omission tally is
// exact.
//
// The allocation is a pure function of its inputs: identical candidates and
// configuration produce identical results.
func Allocate(structureText string, tiers [][]Candidate, cfg *Config) *AllocationResult {
	res := &AllocationResult{}
	limit := cfg.TotalLimit

	reserve := 0
	if !losslessFits(len(structureText), tiers, cfg) {
		reserve = len(omissionNote(worstCaseOmission(tiers)))
	}

	remaining := 0
	switch {
	case len(structureText) > limit:
		res.StructureText = structureText[:limit]
	case reserve >= limit:
		res.StructureText = structureText
	case len(structureText) > limit-reserve:
		res.StructureText = structureText[:limit-reserve]
	default:
		res.StructureText = structureText
		remaining = limit - len(structureText) - reserve
	}

	omitting := false
	for _, tier := range tiers {
		tierStarted := false
		for _, c := range tier {
			if omitting || remaining <= 0 {
				omitting = true
				res.Omission.OmittedCount++
				res.Omission.OmittedBytesEstimate += c.SizeBytes
				continue
			}

			overhead := len(fileHeader(c.Path))
			if !tierStarted {
				overhead += len(tierHeadings[c.Tier])
			}
			room := remaining - overhead
			if room < 0 {
				omitting = true
				res.Omission.OmittedCount++
				res.Omission.OmittedBytesEstimate += c.SizeBytes
				continue
			}

			admitted := min(c.SizeBytes, cfg.PerFileCap, room)
			truncated := admitted < c.SizeBytes
			if truncated {
				// The truncation marker is charged against the budget too.
				admitted = min(c.SizeBytes, cfg.PerFileCap, room-len(truncationMarker))
				if admitted <= 0 {
					omitting = true
					res.Omission.OmittedCount++
					res.Omission.OmittedBytesEstimate += c.SizeBytes
					continue
				}
			}

			content := c.Content
			if admitted < len(content) {
				// Never cut in the middle of a multi-byte rune.
				for admitted > 0 && !utf8.RuneStart(content[admitted]) {
					admitted--
				}
				content = content[:admitted]
			}

			written := overhead + len(content)
			if truncated {
				written += len(truncationMarker)
				// Not fully admitted: charge the whole original size to the
				// estimate for conservative reporting.
				res.Omission.OmittedBytesEstimate += c.SizeBytes
				res.TruncatedCount++
			}
			remaining -= written
			if remaining < 0 {
				remaining = 0
			}

			res.Sections = append(res.Sections, Rendered{
				Path:      c.Path,
				Tier:      c.Tier,
				Content:   content,
				Truncated: truncated,
			})
			res.IncludedCount++
			tierStarted = true
		}
	}

	return res
}

// losslessFits reports whether the structure text and every candidate, plus
// all markup, fit whole within the total limit. When they do, no note space
// is reserved and the output is a lossless pass-through.
func losslessFits(structureLen int, tiers [][]Candidate, cfg *Config) bool {
	total := structureLen
	for _, tier := range tiers {
		first := true
		for _, c := range tier {
			if c.SizeBytes > cfg.PerFileCap {
				return false
			}
			if first {
				total += len(tierHeadings[c.Tier])
				first = false
			}
			total += len(fileHeader(c.Path)) + c.SizeBytes
		}
	}
	return total <= cfg.TotalLimit
}

// worstCaseOmission is an upper bound on the omission tally, used to size the
// note reservation before any disposition is known.
func worstCaseOmission(tiers [][]Candidate) Omission {
	var om Omission
	for _, tier := range tiers {
		om.OmittedCount += len(tier)
		for _, c := range tier {
			om.OmittedBytesEstimate += c.SizeBytes
		}
	}
	return om
}

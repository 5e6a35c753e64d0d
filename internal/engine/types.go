package engine

// Tier represents the render priority class of a candidate file.
// Tiers are rendered in fixed order: structure, then high-priority, then other.
type Tier int

const (
	TierStructure Tier = iota
	TierHighPriority
	TierOther
)

func (t Tier) String() string {
	switch t {
	case TierStructure:
		return "structure"
	case TierHighPriority:
		return "high-priority"
	case TierOther:
		return "other"
	}
	return "unknown"
}

// Candidate is a classified, not-yet-rendered file eligible for inclusion.
type Candidate struct {
	Path      string
	Depth     int
	SizeBytes int
	Content   string
	Tier      Tier
}

// Rendered is one included file after allocation: possibly truncated content
// plus its disposition.
type Rendered struct {
	Path      string
	Tier      Tier
	Content   string
	Truncated bool
}

// Omission accumulates every candidate the allocator could not admit.
// OmittedBytesEstimate also charges the full original size of truncated files,
// so the reported loss is a conservative upper bound.
type Omission struct {
	OmittedCount         int
	OmittedBytesEstimate int
}

// AllocationResult is the output of the budget allocator: the (possibly
// truncated) structure text, the admitted files in render order, and the
// omission tally.
type AllocationResult struct {
	StructureText  string
	Sections       []Rendered
	Omission       Omission
	IncludedCount  int
	TruncatedCount int
}

// Blob is the final bounded context artifact handed to the generation layer.
type Blob struct {
	Text                 string
	IncludedCount        int
	TruncatedCount       int
	OmittedCount         int
	OmittedBytesEstimate int
	LimitChars           int
}

package types

// RepoRef identifies one repository on a hosting platform.
type RepoRef struct {
	Host  string // e.g. "github.com"
	Owner string // owner or full group path
	Name  string
}

// RepoFile is a single entry of a repository snapshot as produced by a
// fetcher. Content is the decoded text of the file; ContentOK is false when
// the content could not be resolved (binary blob, oversize, download failure),
// which downstream treats as skip-worthy.
type RepoFile struct {
	Path      string
	Depth     int // number of directory segments above the file
	SizeBytes int
	Content   string
	ContentOK bool
	IsDir     bool
}

// Snapshot is one fully materialized repository file listing. Truncated is
// set when the listing was cut off by the platform API or the max-files cap.
type Snapshot struct {
	Ref           RepoRef
	DefaultBranch string
	Files         []RepoFile
	Truncated     bool
}

// Package notes resolves git notes attached to GitHub commits and fetches
// their content.
//
// Git stores notes as a tree hanging off a notes ref (refs/notes/commits by
// default). Small trees name each note blob by the full 40-hex SHA of the
// annotated commit; large trees shard into a fanout layout where the first
// two hex characters name a directory and the remaining 38 the file inside
// it. The resolver handles both, plus abbreviated input SHAs.
package notes

import (
	"errors"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/format"
)

// Resolution and fetch errors.
var (
	ErrNoteNotFound  = errors.New("no note for commit")
	ErrAmbiguousSHA  = errors.New("abbreviated SHA matches multiple notes")
	ErrInvalidSHA    = errors.New("invalid commit SHA")
	ErrAllStrategies = errors.New("all fetch strategies failed")
)

// Location identifies a note blob inside a notes tree: the path relative to
// the tree root (direct or fanout) and the blob SHA. Rev is the notes ref
// tip commit, which the web raw endpoints address content by.
type Location struct {
	Ref     string
	Rev     string
	Path    string
	BlobSHA string
}

// Result is the outcome of fetching a note for one ref.
// Found is false when the ref exists but carries no note for the commit
// (callers skip these silently).
type Result struct {
	Ref     string        `json:"ref"`
	Found   bool          `json:"found"`
	Format  format.Format `json:"format,omitempty"`
	Content string        `json:"content,omitempty"`
	HTML    string        `json:"html,omitempty"`
}

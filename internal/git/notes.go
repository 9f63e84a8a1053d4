package git

import (
	"context"
	"errors"
	"strings"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/output"
)

// ErrNoLocalNote marks a commit without a note under the requested ref.
var ErrNoLocalNote = errors.New("no local note for commit")

// ReadNote reads the note for a commit under the given notes ref from the
// local repository. Returns ErrNoLocalNote (wrapped) when the commit has no
// note so callers can skip it the same way they skip API not-founds.
func ReadNote(ctx context.Context, ref, commit string) (string, error) {
	out, err := RunContext(ctx, "notes", "--ref="+ref, "show", commit)
	if err != nil {
		var exitErr *output.ExitError
		if errors.As(err, &exitErr) {
			msg := exitErr.Message
			if strings.Contains(msg, "no note found") || strings.Contains(msg, "no such object") {
				return "", ErrNoLocalNote
			}
		}
		return "", err
	}
	return out, nil
}

// ListNotesRefs returns every refs/notes/* ref present in the local
// repository. An empty repository yields an empty slice.
func ListNotesRefs(ctx context.Context) ([]string, error) {
	out, err := RunContext(ctx, "for-each-ref", "--format=%(refname)", "refs/notes/")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return []string{}, nil
	}

	var refs []string
	for line := range strings.SplitSeq(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			refs = append(refs, line)
		}
	}
	return refs, nil
}

// FetchNotesRef fetches a notes ref from the given remote so local reads see
// what the server has.
func FetchNotesRef(ctx context.Context, remote, ref string) error {
	_, err := RunContext(ctx, "fetch", remote, ref+":"+ref)
	return err
}

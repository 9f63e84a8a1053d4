package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
)

// fanoutPrefixLen is git's fanout sharding width: 2 hex chars per directory.
const fanoutPrefixLen = 2

// minAbbrevLen matches git's minimum abbreviated object name length.
const minAbbrevLen = 4

// SubtreeLoader fetches the entries of a subtree by SHA. The resolver walks
// at most one level of fanout, so a single loader callback suffices.
type SubtreeLoader func(ctx context.Context, sha string) ([]github.TreeEntry, error)

// NormalizeSHA validates and lowercases a full or abbreviated commit SHA.
func NormalizeSHA(sha string) (string, error) {
	sha = strings.ToLower(strings.TrimSpace(sha))
	if len(sha) < minAbbrevLen || len(sha) > 40 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSHA, sha)
	}
	for _, r := range sha {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", fmt.Errorf("%w: %q", ErrInvalidSHA, sha)
		}
	}
	return sha, nil
}

// Resolve maps a commit SHA to its note blob within a notes tree.
//
// Full SHAs try the direct layout first (an entry named by the whole SHA),
// then the fanout layout (sha[:2] directory, sha[2:] file). Abbreviated SHAs
// prefix-match entries in both layouts; more than one match is ambiguous.
func Resolve(ctx context.Context, root []github.TreeEntry, load SubtreeLoader, sha string) (path, blobSHA string, err error) {
	sha, err = NormalizeSHA(sha)
	if err != nil {
		return "", "", err
	}

	if len(sha) == 40 {
		return resolveFull(ctx, root, load, sha)
	}
	return resolveAbbreviated(ctx, root, load, sha)
}

// resolveFull looks up an exact 40-hex SHA.
func resolveFull(ctx context.Context, root []github.TreeEntry, load SubtreeLoader, sha string) (string, string, error) {
	// Direct layout: blob named by the full SHA at the root.
	for _, e := range root {
		if e.Type == "blob" && e.Path == sha {
			return e.Path, e.SHA, nil
		}
	}

	// Fanout layout: sha[:2]/sha[2:].
	dir, rest := sha[:fanoutPrefixLen], sha[fanoutPrefixLen:]
	for _, e := range root {
		if e.Type != "tree" || e.Path != dir {
			continue
		}
		entries, err := load(ctx, e.SHA)
		if err != nil {
			return "", "", err
		}
		for _, sub := range entries {
			if sub.Type == "blob" && sub.Path == rest {
				return dir + "/" + rest, sub.SHA, nil
			}
		}
	}

	return "", "", fmt.Errorf("%w: %s", ErrNoteNotFound, sha)
}

// resolveAbbreviated prefix-matches an abbreviated SHA against both layouts.
type match struct {
	path    string
	blobSHA string
}

func resolveAbbreviated(ctx context.Context, root []github.TreeEntry, load SubtreeLoader, sha string) (string, string, error) {
	var matches []match

	// Direct layout: root blobs whose 40-hex name starts with the prefix.
	for _, e := range root {
		if e.Type == "blob" && len(e.Path) == 40 && strings.HasPrefix(e.Path, sha) {
			matches = append(matches, match{path: e.Path, blobSHA: e.SHA})
		}
	}

	// Fanout layout: the directory is pinned by the first two characters,
	// the remainder prefix-matches inside it.
	dir, rest := sha[:fanoutPrefixLen], sha[fanoutPrefixLen:]
	for _, e := range root {
		if e.Type != "tree" || e.Path != dir {
			continue
		}
		entries, err := load(ctx, e.SHA)
		if err != nil {
			return "", "", err
		}
		for _, sub := range entries {
			if sub.Type == "blob" && len(sub.Path) == 38 && strings.HasPrefix(sub.Path, rest) {
				matches = append(matches, match{path: dir + "/" + sub.Path, blobSHA: sub.SHA})
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("%w: %s", ErrNoteNotFound, sha)
	case 1:
		return matches[0].path, matches[0].blobSHA, nil
	default:
		return "", "", fmt.Errorf("%w: %s (%d matches)", ErrAmbiguousSHA, sha, len(matches))
	}
}

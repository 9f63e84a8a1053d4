package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/cache"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/render"
)

// TreeSnapshot is the cached resolution of a notes ref: the tip commit and
// the root tree entries behind it. Snapshots go stale on the cache's TTL;
// a moved ref is picked up on the next load after expiry.
type TreeSnapshot struct {
	Rev     string
	Entries []github.TreeEntry
}

// Service orchestrates ref listing, tree resolution, content fetch, and
// rendering. The tree cache is injected (no package-level state).
type Service struct {
	client *github.Client
	refs   []string
	trees  cache.Cache[TreeSnapshot]
}

// NewService creates a Service. refs is the ordered list of notes refs to
// consult (the default ref first). A nil trees cache gets the default TTL.
func NewService(client *github.Client, refs []string, trees cache.Cache[TreeSnapshot]) *Service {
	if trees == nil {
		trees = cache.New[TreeSnapshot](cache.DefaultTTL)
	}
	return &Service{client: client, refs: refs, trees: trees}
}

// Refs returns the configured notes refs.
func (s *Service) Refs() []string { return s.refs }

// ClearCache evicts every cached tree snapshot.
func (s *Service) ClearCache() { s.trees.Clear() }

// treeKey builds the cache key for a repo's notes ref.
func treeKey(owner, repo, ref string) string {
	return owner + "/" + repo + ":" + ref
}

// loadTree returns the notes tree for a ref, from cache when fresh.
// Propagates github.ErrNotFound when the ref does not exist.
func (s *Service) loadTree(ctx context.Context, owner, repo, ref string) (TreeSnapshot, error) {
	key := treeKey(owner, repo, ref)
	if snap, ok := s.trees.Get(key); ok {
		return snap, nil
	}

	refObj, err := s.client.GetRef(ctx, owner, repo, ref)
	if err != nil {
		return TreeSnapshot{}, err
	}

	commit, err := s.client.GetCommit(ctx, owner, repo, refObj.Object.SHA)
	if err != nil {
		return TreeSnapshot{}, err
	}

	tree, err := s.client.GetTree(ctx, owner, repo, commit.Tree.SHA)
	if err != nil {
		return TreeSnapshot{}, err
	}

	snap := TreeSnapshot{Rev: refObj.Object.SHA, Entries: tree.Entries}
	s.trees.Set(key, snap)
	return snap, nil
}

// FetchNote fetches and renders the note for one commit under one ref.
//
// A missing ref or a commit without a note yields Found=false with a nil
// error (callers iterating refs skip these silently, per the error design).
// Ambiguous abbreviated SHAs, rate limiting, and transport failures are
// returned as errors.
func (s *Service) FetchNote(ctx context.Context, owner, repo, ref, sha string) (*Result, error) {
	snap, err := s.loadTree(ctx, owner, repo, ref)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return &Result{Ref: ref}, nil
		}
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}

	loader := func(ctx context.Context, treeSHA string) ([]github.TreeEntry, error) {
		sub, err := s.client.GetTree(ctx, owner, repo, treeSHA)
		if err != nil {
			return nil, err
		}
		return sub.Entries, nil
	}

	path, blobSHA, err := Resolve(ctx, snap.Entries, loader, sha)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return &Result{Ref: ref}, nil
		}
		return nil, err
	}

	loc := Location{Ref: ref, Rev: snap.Rev, Path: path, BlobSHA: blobSHA}
	content, err := NewFetcher(s.client, owner, repo).FetchContent(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetching note %s: %w", path, err)
	}

	text := string(content)
	f, html, err := render.Auto(text)
	if err != nil {
		return nil, fmt.Errorf("rendering note %s: %w", path, err)
	}

	return &Result{
		Ref:     ref,
		Found:   true,
		Format:  f,
		Content: text,
		HTML:    html,
	}, nil
}

// FetchAll fetches notes for a commit across every configured ref,
// sequentially. Refs without a note are skipped; the first hard error stops
// the iteration and is returned alongside the results gathered so far.
func (s *Service) FetchAll(ctx context.Context, owner, repo, sha string) ([]Result, error) {
	var results []Result
	for _, ref := range s.refs {
		res, err := s.FetchNote(ctx, owner, repo, ref, sha)
		if err != nil {
			return results, err
		}
		if res.Found {
			results = append(results, *res)
		}
	}
	return results, nil
}

// ListRefs returns the configured refs merged with notes refs discovered via
// the matching-refs endpoint, deduplicated, configured refs first. Discovery
// failing with not-found (repo has no notes refs) is not an error.
func (s *Service) ListRefs(ctx context.Context, owner, repo string) ([]string, error) {
	out := make([]string, 0, len(s.refs))
	seen := make(map[string]bool, len(s.refs))
	for _, r := range s.refs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}

	discovered, err := s.client.MatchingRefs(ctx, owner, repo, "refs/notes/")
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("discovering notes refs: %w", err)
	}
	for _, r := range discovered {
		if !seen[r.Ref] {
			seen[r.Ref] = true
			out = append(out, r.Ref)
		}
	}
	return out, nil
}

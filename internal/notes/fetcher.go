package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
)

// Strategy fetches note content for a resolved location.
// Strategies are tried in order; see FetchContent.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, owner, repo string, loc Location) ([]byte, error)
}

// sessionStrategy hits the web raw endpoint with the stored session cookie.
// Works for private repos the session can see, without spending API rate
// limit.
type sessionStrategy struct {
	client *github.Client
}

func (s sessionStrategy) Name() string { return "session" }

func (s sessionStrategy) Fetch(ctx context.Context, owner, repo string, loc Location) ([]byte, error) {
	return s.client.WebRaw(ctx, owner, repo, loc.Rev, loc.Path, true)
}

// publicRawStrategy hits the web raw endpoint anonymously. Free and
// unmetered for public repositories.
type publicRawStrategy struct {
	client *github.Client
}

func (s publicRawStrategy) Name() string { return "public-raw" }

func (s publicRawStrategy) Fetch(ctx context.Context, owner, repo string, loc Location) ([]byte, error) {
	return s.client.WebRaw(ctx, owner, repo, loc.Rev, loc.Path, false)
}

// tokenStrategy fetches the blob through the authenticated REST API.
// Last in the chain: it spends rate limit but reaches anything the token can.
type tokenStrategy struct {
	client *github.Client
}

func (s tokenStrategy) Name() string { return "token-api" }

func (s tokenStrategy) Fetch(ctx context.Context, owner, repo string, loc Location) ([]byte, error) {
	if !s.client.HasToken() {
		return nil, github.ErrNoToken
	}
	return s.client.GetBlobRaw(ctx, owner, repo, loc.BlobSHA)
}

// Fetcher runs the strategy chain for a repository.
type Fetcher struct {
	owner      string
	repo       string
	strategies []Strategy
}

// NewFetcher builds the default chain: session cookie, then anonymous web
// raw, then token-authenticated API.
func NewFetcher(client *github.Client, owner, repo string) *Fetcher {
	return &Fetcher{
		owner: owner,
		repo:  repo,
		strategies: []Strategy{
			sessionStrategy{client},
			publicRawStrategy{client},
			tokenStrategy{client},
		},
	}
}

// newFetcherWithStrategies is the injection point for tests.
func newFetcherWithStrategies(owner, repo string, strategies ...Strategy) *Fetcher {
	return &Fetcher{owner: owner, repo: repo, strategies: strategies}
}

// FetchContent tries each strategy in order and returns the first success.
//
// Auth and not-found responses (401/403/404, missing credentials) advance to
// the next strategy, as do network errors — a strategy that cannot answer is
// simply skipped. When every strategy fails, the joined errors come back
// wrapped in ErrAllStrategies so callers can still pick out rate limiting or
// a uniform not-found with errors.Is.
func (f *Fetcher) FetchContent(ctx context.Context, loc Location) ([]byte, error) {
	var failures []error
	for _, s := range f.strategies {
		content, err := s.Fetch(ctx, f.owner, f.repo, loc)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !advances(err) {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return nil, fmt.Errorf("%w: %w", ErrAllStrategies, errors.Join(failures...))
}

// advances reports whether an error moves the chain to the next strategy.
func advances(err error) bool {
	return errors.Is(err, github.ErrNotFound) ||
		errors.Is(err, github.ErrAuthInvalid) ||
		errors.Is(err, github.ErrNoToken) ||
		errors.Is(err, github.ErrRateLimited) ||
		errors.Is(err, github.ErrNetworkError)
}

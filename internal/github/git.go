package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Ref is a git reference as returned by the refs endpoints.
type Ref struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// Commit is the subset of a git commit object we need: its tree.
type Commit struct {
	SHA  string `json:"sha"`
	Tree struct {
		SHA string `json:"sha"`
	} `json:"tree"`
}

// TreeEntry is a single entry of a git tree. Type is "blob" for files and
// "tree" for directories (the notes fanout layout uses both).
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// Tree is a git tree listing.
type Tree struct {
	SHA       string      `json:"sha"`
	Entries   []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

const acceptJSON = "application/vnd.github+json"

// AcceptRaw asks the blobs endpoint for undecoded content.
const AcceptRaw = "application/vnd.github.raw+json"

// GetRef fetches a single reference. The ref is given fully qualified
// ("refs/notes/commits"); the API wants it without the "refs/" prefix.
func (c *Client) GetRef(ctx context.Context, owner, repo, ref string) (*Ref, error) {
	short := strings.TrimPrefix(ref, "refs/")
	url := fmt.Sprintf("%s/repos/%s/%s/git/ref/%s", c.apiBase, owner, repo, short)

	body, err := c.get(ctx, url, acceptJSON, true)
	if err != nil {
		return nil, err
	}

	var out Ref
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding ref: %v", ErrAPIError, err)
	}
	return &out, nil
}

// MatchingRefs lists refs under a prefix, e.g. "refs/notes/" to discover
// every notes ref a repository carries.
func (c *Client) MatchingRefs(ctx context.Context, owner, repo, prefix string) ([]Ref, error) {
	short := strings.TrimPrefix(prefix, "refs/")
	url := fmt.Sprintf("%s/repos/%s/%s/git/matching-refs/%s", c.apiBase, owner, repo, short)

	body, err := c.get(ctx, url, acceptJSON, true)
	if err != nil {
		return nil, err
	}

	var out []Ref
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding refs: %v", ErrAPIError, err)
	}
	return out, nil
}

// GetCommit fetches a git commit object (not the higher-level commit API;
// we only need the tree SHA behind the notes ref).
func (c *Client) GetCommit(ctx context.Context, owner, repo, sha string) (*Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/git/commits/%s", c.apiBase, owner, repo, sha)

	body, err := c.get(ctx, url, acceptJSON, true)
	if err != nil {
		return nil, err
	}

	var out Commit
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding commit: %v", ErrAPIError, err)
	}
	return &out, nil
}

// GetTree fetches a git tree listing by SHA. Non-recursive: the fanout
// layout is at most two levels and is walked one tree at a time.
func (c *Client) GetTree(ctx context.Context, owner, repo, treeSHA string) (*Tree, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s", c.apiBase, owner, repo, treeSHA)

	body, err := c.get(ctx, url, acceptJSON, true)
	if err != nil {
		return nil, err
	}

	var out Tree
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding tree: %v", ErrAPIError, err)
	}
	return &out, nil
}

// GetBlobRaw fetches blob content via the API with the raw media type.
// This is the token-authenticated strategy of the fetch chain; it requires
// a configured token to be worth trying on private repositories.
func (c *Client) GetBlobRaw(ctx context.Context, owner, repo, blobSHA string) ([]byte, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/git/blobs/%s", c.apiBase, owner, repo, blobSHA)
	return c.get(ctx, url, AcceptRaw, true)
}

// WebRaw fetches file content from the web raw endpoint
// ({webBase}/{owner}/{repo}/raw/{rev}/{path}). With withSession, the stored
// user_session cookie rides along, granting access to private repositories
// the logged-in session can see.
func (c *Client) WebRaw(ctx context.Context, owner, repo, rev, path string, withSession bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	url := fmt.Sprintf("%s/%s/%s/raw/%s/%s", c.webBase, owner, repo, rev, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if withSession {
		if c.sessionCookie == "" {
			return nil, ErrNoToken
		}
		req.AddCookie(&http.Cookie{Name: "user_session", Value: c.sessionCookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrAPIError, readErr)
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}
	return body, nil
}

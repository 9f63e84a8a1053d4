// Package github provides a client for the GitHub REST and web raw endpoints
// used to locate and fetch git notes.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Typed errors callers branch on. Not-found is routinely skipped when
// iterating candidate refs; the others surface to the user.
var (
	ErrInvalidRepo  = errors.New("invalid repository spec")
	ErrNoToken      = errors.New("no GitHub token configured")
	ErrNotFound     = errors.New("not found")
	ErrAuthInvalid  = errors.New("GitHub authentication failed")
	ErrRateLimited  = errors.New("GitHub API rate limit exceeded")
	ErrAPIError     = errors.New("GitHub API error")
	ErrNetworkError = errors.New("network error connecting to GitHub")
)

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the GitHub API and web raw endpoints.
type Client struct {
	httpClient    HTTPDoer
	limiter       *rate.Limiter
	apiBase       string
	webBase       string
	token         string
	sessionCookie string
	userAgent     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects an HTTP client (test doubles, custom transports).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.httpClient = doer }
}

// WithToken sets the API token used for Authorization headers.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithSessionCookie sets the github.com user_session cookie value used by
// cookie-authenticated web raw requests.
func WithSessionCookie(cookie string) Option {
	return func(c *Client) { c.sessionCookie = cookie }
}

// WithBaseURLs overrides the API and web base URLs (GHE, test servers).
func WithBaseURLs(apiBase, webBase string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimRight(apiBase, "/")
		c.webBase = strings.TrimRight(webBase, "/")
	}
}

// NewClient creates a GitHub client.
// Unauthenticated GitHub allows 60 requests/hour; the limiter just keeps
// bursts polite rather than enforcing the server-side quota.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(8), 8),
		apiBase:    "https://api.github.com",
		webBase:    "https://github.com",
		userAgent:  "ghnotes-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasToken reports whether the client was configured with an API token.
func (c *Client) HasToken() bool { return c.token != "" }

// HasSessionCookie reports whether a web session cookie is configured.
func (c *Client) HasSessionCookie() bool { return c.sessionCookie != "" }

// repoPattern validates "owner/repo" specs and the common URL forms.
var (
	fullURLPattern   = regexp.MustCompile(`^(?:https?://)?github\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?(?:/.*)?$`)
	shorthandPattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)$`)
)

// ParseRepo parses a repository spec and returns (owner, repo).
// Supported forms:
//   - owner/repo
//   - github.com/owner/repo
//   - https://github.com/owner/repo[.git][/...]
func ParseRepo(input string) (owner, repo string, err error) {
	input = strings.TrimSpace(input)

	if matches := fullURLPattern.FindStringSubmatch(input); matches != nil {
		return matches[1], matches[2], nil
	}
	if matches := shorthandPattern.FindStringSubmatch(input); matches != nil {
		return matches[1], matches[2], nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, input)
}

// get performs a rate-limited GET and maps HTTP status codes onto the typed
// error set. The caller owns interpretation of the body.
func (c *Client) get(ctx context.Context, url, accept string, authed bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if authed && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrAPIError, err)
	}

	if err := statusError(resp); err != nil {
		return nil, err
	}
	return body, nil
}

// statusError maps a non-200 response to a typed error.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrAuthInvalid
	case http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return ErrRateLimited
		}
		return ErrAuthInvalid
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}
}

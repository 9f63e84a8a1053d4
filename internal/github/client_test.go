package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"octo/hello", "octo", "hello", false},
		{"github.com/octo/hello", "octo", "hello", false},
		{"https://github.com/octo/hello", "octo", "hello", false},
		{"https://github.com/octo/hello.git", "octo", "hello", false},
		{"https://github.com/octo/hello/commit/abc123", "octo", "hello", false},
		{"  octo/hello  ", "octo", "hello", false},
		{"not-a-repo", "", "", true},
		{"", "", "", true},
		{"a/b/c", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRepo(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRepo(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if owner != tt.wantOwner || repo != tt.wantRepo {
			t.Errorf("ParseRepo(%q) = (%q, %q), want (%q, %q)",
				tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
		}
		if tt.wantErr && err != nil && !errors.Is(err, ErrInvalidRepo) {
			t.Errorf("ParseRepo(%q) error = %v, want ErrInvalidRepo", tt.input, err)
		}
	}
}

// newTestClient points a client at an httptest server for both API and web.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append(opts, WithBaseURLs(srv.URL, srv.URL))
	return NewClient(opts...), srv
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		wantErr error
	}{
		{"not found", http.StatusNotFound, nil, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, nil, ErrAuthInvalid},
		{"forbidden without rate header", http.StatusForbidden, nil, ErrAuthInvalid},
		{
			"forbidden with exhausted rate limit",
			http.StatusForbidden,
			map[string]string{"X-RateLimit-Remaining": "0"},
			ErrRateLimited,
		},
		{"too many requests", http.StatusTooManyRequests, nil, ErrRateLimited},
		{"server error", http.StatusInternalServerError, nil, ErrAPIError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}))

			_, err := client.GetRef(context.Background(), "octo", "hello", "refs/notes/commits")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetRef() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetRef(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/hello/git/ref/notes/commits" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		w.Write([]byte(`{"ref":"refs/notes/commits","object":{"sha":"abc","type":"commit"}}`))
	}), WithToken("tok"))

	ref, err := client.GetRef(context.Background(), "octo", "hello", "refs/notes/commits")
	if err != nil {
		t.Fatalf("GetRef() error = %v", err)
	}
	if ref.Object.SHA != "abc" {
		t.Errorf("Object.SHA = %q, want abc", ref.Object.SHA)
	}
}

func TestMatchingRefs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/hello/git/matching-refs/notes/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"ref":"refs/notes/commits","object":{"sha":"a"}},{"ref":"refs/notes/review","object":{"sha":"b"}}]`))
	}))

	refs, err := client.MatchingRefs(context.Background(), "octo", "hello", "refs/notes/")
	if err != nil {
		t.Fatalf("MatchingRefs() error = %v", err)
	}
	if len(refs) != 2 || refs[1].Ref != "refs/notes/review" {
		t.Errorf("MatchingRefs() = %+v, want two notes refs", refs)
	}
}

func TestGetTree(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/hello/git/trees/tree-sha" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"sha":"tree-sha","tree":[{"path":"ab","type":"tree","sha":"sub"},{"path":"file","type":"blob","sha":"blob1"}]}`))
	}))

	tree, err := client.GetTree(context.Background(), "octo", "hello", "tree-sha")
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if len(tree.Entries) != 2 || tree.Entries[0].Type != "tree" {
		t.Errorf("GetTree() entries = %+v", tree.Entries)
	}
}

func TestGetBlobRawUsesRawAccept(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != AcceptRaw {
			t.Errorf("Accept = %q, want %q", got, AcceptRaw)
		}
		w.Write([]byte("note body"))
	}))

	body, err := client.GetBlobRaw(context.Background(), "octo", "hello", "blob1")
	if err != nil {
		t.Fatalf("GetBlobRaw() error = %v", err)
	}
	if string(body) != "note body" {
		t.Errorf("GetBlobRaw() = %q", body)
	}
}

func TestWebRawSessionCookie(t *testing.T) {
	var gotCookie string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("user_session"); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte("raw content"))
	}), WithSessionCookie("sess-123"))

	body, err := client.WebRaw(context.Background(), "octo", "hello", "abc", "de/adbeef", true)
	if err != nil {
		t.Fatalf("WebRaw() error = %v", err)
	}
	if string(body) != "raw content" {
		t.Errorf("WebRaw() = %q", body)
	}
	if gotCookie != "sess-123" {
		t.Errorf("session cookie = %q, want sess-123", gotCookie)
	}
}

func TestWebRawWithoutSessionCookieConfigured(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("public"))
	}))

	// Session strategy without a cookie configured fails fast.
	if _, err := client.WebRaw(context.Background(), "o", "r", "rev", "path", true); !errors.Is(err, ErrNoToken) {
		t.Errorf("WebRaw(withSession) error = %v, want ErrNoToken", err)
	}

	// Anonymous fetch still works.
	body, err := client.WebRaw(context.Background(), "o", "r", "rev", "path", false)
	if err != nil {
		t.Fatalf("WebRaw(anonymous) error = %v", err)
	}
	if string(body) != "public" {
		t.Errorf("WebRaw() = %q", body)
	}
}

func TestCheckAuth(t *testing.T) {
	t.Run("no token fails without network", func(t *testing.T) {
		client := NewClient(WithHTTPClient(failingDoer{}))
		if _, err := client.CheckAuth(context.Background()); !errors.Is(err, ErrNoToken) {
			t.Errorf("CheckAuth() error = %v, want ErrNoToken", err)
		}
	})

	t.Run("valid token returns login", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/user" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			w.Write([]byte(`{"login":"octocat","name":"Octo Cat"}`))
		}), WithToken("tok"))

		u, err := client.CheckAuth(context.Background())
		if err != nil {
			t.Fatalf("CheckAuth() error = %v", err)
		}
		if u.Login != "octocat" {
			t.Errorf("Login = %q, want octocat", u.Login)
		}
	})

	t.Run("rejected token maps to auth invalid", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}), WithToken("bad"))

		if _, err := client.CheckAuth(context.Background()); !errors.Is(err, ErrAuthInvalid) {
			t.Errorf("CheckAuth() error = %v, want ErrAuthInvalid", err)
		}
	})
}

// failingDoer always errors, proving a code path never reached the network.
type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("network should not be touched")
}

func TestNetworkErrorWrapped(t *testing.T) {
	client := NewClient(WithHTTPClient(failingDoer{}))
	_, err := client.GetRef(context.Background(), "o", "r", "refs/notes/commits")
	if !errors.Is(err, ErrNetworkError) {
		t.Errorf("GetRef() error = %v, want ErrNetworkError", err)
	}
}

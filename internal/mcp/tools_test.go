package mcp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/cache"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
)

const testSHA = "aabbccddeeff00112233445566778899aabbccdd"

// newTestFixture wires a service and client against a fake GitHub server
// carrying one markdown note for testSHA on refs/notes/commits.
func newTestFixture(t *testing.T, opts ...github.Option) (*notes.Service, *github.Client) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/git/ref/notes/commits", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ref":"refs/notes/commits","object":{"sha":"tipsha","type":"commit"}}`)
	})
	mux.HandleFunc("/repos/octo/hello/git/commits/tipsha", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"sha":"tipsha","tree":{"sha":"rootsha"}}`)
	})
	mux.HandleFunc("/repos/octo/hello/git/trees/rootsha", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"sha":"rootsha","tree":[{"path":"%s","type":"blob","sha":"blobsha"}]}`, testSHA)
	})
	mux.HandleFunc("/octo/hello/raw/tipsha/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "# Review note")
	})
	mux.HandleFunc("/repos/octo/hello/git/matching-refs/notes/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"ref":"refs/notes/review","object":{"sha":"b"}}]`)
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"login":"octocat"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	opts = append(opts, github.WithBaseURLs(srv.URL, srv.URL))
	client := github.NewClient(opts...)
	svc := notes.NewService(client, []string{"refs/notes/commits"}, cache.New[notes.TreeSnapshot](time.Minute))
	return svc, client
}

func TestHandleFetchNote(t *testing.T) {
	svc, _ := newTestFixture(t)
	handler := handleFetchNote(svc)

	_, out, err := handler(context.Background(), nil, FetchNoteInput{Repo: "octo/hello", SHA: testSHA})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("Count = %d, want 1", out.Count)
	}
	note := out.Notes[0]
	if note.Ref != "refs/notes/commits" {
		t.Errorf("Ref = %q", note.Ref)
	}
	if note.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", note.Format)
	}
	if !strings.Contains(note.HTML, "<h1") {
		t.Errorf("HTML = %q, want rendered heading", note.HTML)
	}
}

func TestHandleFetchNoteAbbreviatedSHA(t *testing.T) {
	svc, _ := newTestFixture(t)
	handler := handleFetchNote(svc)

	_, out, err := handler(context.Background(), nil, FetchNoteInput{Repo: "octo/hello", SHA: testSHA[:10]})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out.Count != 1 {
		t.Errorf("Count = %d, want 1 for abbreviated SHA", out.Count)
	}
}

func TestHandleFetchNoteNoNote(t *testing.T) {
	svc, _ := newTestFixture(t)
	handler := handleFetchNote(svc)

	_, out, err := handler(context.Background(), nil, FetchNoteInput{
		Repo: "octo/hello",
		SHA:  "ffffffffffffffffffffffffffffffffffffffff",
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}
}

func TestHandleFetchNoteInvalidRepo(t *testing.T) {
	svc, _ := newTestFixture(t)
	handler := handleFetchNote(svc)

	if _, _, err := handler(context.Background(), nil, FetchNoteInput{Repo: "nonsense", SHA: testSHA}); err == nil {
		t.Error("handler should reject an invalid repo spec")
	}
}

func TestHandleGetRefs(t *testing.T) {
	svc, _ := newTestFixture(t)
	handler := handleGetRefs(svc)

	_, out, err := handler(context.Background(), nil, GetRefsInput{Repo: "octo/hello"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	want := []string{"refs/notes/commits", "refs/notes/review"}
	if len(out.Refs) != len(want) {
		t.Fatalf("Refs = %v, want %v", out.Refs, want)
	}
	for i := range want {
		if out.Refs[i] != want[i] {
			t.Errorf("Refs[%d] = %q, want %q", i, out.Refs[i], want[i])
		}
	}
}

func TestHandleCheckAuth(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		_, client := newTestFixture(t)
		_, out, err := handleCheckAuth(client)(context.Background(), nil, CheckAuthInput{})
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		if out.Authenticated || out.Reason != "no token configured" {
			t.Errorf("output = %+v", out)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		_, client := newTestFixture(t, github.WithToken("good-token"))
		_, out, err := handleCheckAuth(client)(context.Background(), nil, CheckAuthInput{})
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		if !out.Authenticated || out.Login != "octocat" {
			t.Errorf("output = %+v", out)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		_, client := newTestFixture(t, github.WithToken("bad-token"))
		_, out, err := handleCheckAuth(client)(context.Background(), nil, CheckAuthInput{})
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		if out.Authenticated || out.Reason != "token rejected by GitHub" {
			t.Errorf("output = %+v", out)
		}
	})
}

func TestHandleClearCache(t *testing.T) {
	svc, _ := newTestFixture(t)
	_, out, err := handleClearCache(svc)(context.Background(), nil, ClearCacheInput{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !out.Cleared {
		t.Error("Cleared = false")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	svc, client := newTestFixture(t)
	server := NewServer("test", svc, client)
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}

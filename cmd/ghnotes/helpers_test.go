package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/cache"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
)

const testNoteSHA = "aabbccddeeff00112233445566778899aabbccdd"

// newTestService builds a notes service against a fake GitHub server holding
// one note ("status: reviewed") for testNoteSHA on refs/notes/commits.
func newTestService(t *testing.T, opts ...github.Option) (*notes.Service, *github.Client) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/git/ref/notes/commits", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ref":"refs/notes/commits","object":{"sha":"tipsha","type":"commit"}}`)
	})
	mux.HandleFunc("/repos/octo/hello/git/commits/tipsha", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"sha":"tipsha","tree":{"sha":"rootsha"}}`)
	})
	mux.HandleFunc("/repos/octo/hello/git/trees/rootsha", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"sha":"rootsha","tree":[{"path":"%s","type":"blob","sha":"blobsha"}]}`, testNoteSHA)
	})
	mux.HandleFunc("/octo/hello/raw/tipsha/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "status: reviewed\nby: octocat")
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

// executeCommand runs a command with args and captures its combined output.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	// Persistent flags like --json live on the root command.
	root := newRootCmd()
	root.ResetCommands()
	root.AddCommand(cmd)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	err := root.Execute()
	return buf.String(), err
}

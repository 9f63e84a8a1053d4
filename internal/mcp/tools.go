package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
)

// --- fetch_note tool ---

// FetchNoteInput is the input for the fetch_note tool.
type FetchNoteInput struct {
	Repo string `json:"repo"          jsonschema:"repository as owner/name or GitHub URL"`
	SHA  string `json:"sha"           jsonschema:"commit SHA, full or abbreviated"`
	Ref  string `json:"ref,omitempty" jsonschema:"single notes ref to check instead of the configured list"`
}

// NoteOutput is one fetched note.
type NoteOutput struct {
	Ref     string `json:"ref"     jsonschema:"notes ref the content came from"`
	Format  string `json:"format"  jsonschema:"detected content format (json, markdown, yaml, plain)"`
	Content string `json:"content" jsonschema:"raw note content"`
	HTML    string `json:"html"    jsonschema:"sanitized HTML rendering"`
}

// FetchNoteOutput is the output for the fetch_note tool.
type FetchNoteOutput struct {
	Notes []NoteOutput `json:"notes"         jsonschema:"notes found for the commit, one per ref"`
	Count int          `json:"count"         jsonschema:"number of notes found"`
	Hint  string       `json:"hint,omitempty" jsonschema:"guidance when access failed"`
}

func handleFetchNote(svc *notes.Service) mcp.ToolHandlerFor[FetchNoteInput, FetchNoteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FetchNoteInput) (*mcp.CallToolResult, FetchNoteOutput, error) {
		owner, repo, err := github.ParseRepo(input.Repo)
		if err != nil {
			return nil, FetchNoteOutput{}, err
		}

		var results []notes.Result
		if input.Ref != "" {
			res, err := svc.FetchNote(ctx, owner, repo, input.Ref, input.SHA)
			if err != nil {
				return nil, FetchNoteOutput{Hint: accessHint(err)}, err
			}
			if res.Found {
				results = append(results, *res)
			}
		} else {
			results, err = svc.FetchAll(ctx, owner, repo, input.SHA)
			if err != nil {
				return nil, FetchNoteOutput{Hint: accessHint(err)}, err
			}
		}

		out := FetchNoteOutput{Count: len(results)}
		for _, r := range results {
			out.Notes = append(out.Notes, NoteOutput{
				Ref:     r.Ref,
				Format:  string(r.Format),
				Content: r.Content,
				HTML:    r.HTML,
			})
		}
		return nil, out, nil
	}
}

// accessHint points at token configuration for auth-shaped failures.
func accessHint(err error) string {
	switch {
	case errors.Is(err, github.ErrRateLimited):
		return "rate limited; configure a token with `ghnotes config set-token` to raise the limit"
	case errors.Is(err, github.ErrAuthInvalid), errors.Is(err, github.ErrNoToken):
		return "access denied; run `ghnotes config set-token` with a token that can read this repository"
	default:
		return ""
	}
}

// --- get_refs tool ---

// GetRefsInput is the input for the get_refs tool.
type GetRefsInput struct {
	Repo string `json:"repo" jsonschema:"repository as owner/name or GitHub URL"`
}

// GetRefsOutput is the output for the get_refs tool.
type GetRefsOutput struct {
	Refs []string `json:"refs" jsonschema:"notes refs, configured first then discovered"`
}

func handleGetRefs(svc *notes.Service) mcp.ToolHandlerFor[GetRefsInput, GetRefsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetRefsInput) (*mcp.CallToolResult, GetRefsOutput, error) {
		owner, repo, err := github.ParseRepo(input.Repo)
		if err != nil {
			return nil, GetRefsOutput{}, err
		}

		refs, err := svc.ListRefs(ctx, owner, repo)
		if err != nil {
			return nil, GetRefsOutput{}, fmt.Errorf("listing refs: %w", err)
		}
		return nil, GetRefsOutput{Refs: refs}, nil
	}
}

// --- check_auth tool ---

// CheckAuthInput is the input for the check_auth tool (no parameters needed).
type CheckAuthInput struct{}

// CheckAuthOutput is the output for the check_auth tool.
type CheckAuthOutput struct {
	Authenticated bool   `json:"authenticated"   jsonschema:"whether the token was accepted"`
	Login         string `json:"login,omitempty" jsonschema:"authenticated GitHub login"`
	Reason        string `json:"reason,omitempty" jsonschema:"why authentication is unavailable"`
}

func handleCheckAuth(client *github.Client) mcp.ToolHandlerFor[CheckAuthInput, CheckAuthOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CheckAuthInput) (*mcp.CallToolResult, CheckAuthOutput, error) {
		user, err := client.CheckAuth(ctx)
		switch {
		case err == nil:
			return nil, CheckAuthOutput{Authenticated: true, Login: user.Login}, nil
		case errors.Is(err, github.ErrNoToken):
			return nil, CheckAuthOutput{Reason: "no token configured"}, nil
		case errors.Is(err, github.ErrAuthInvalid):
			return nil, CheckAuthOutput{Reason: "token rejected by GitHub"}, nil
		case errors.Is(err, github.ErrRateLimited):
			return nil, CheckAuthOutput{Reason: "rate limited"}, nil
		default:
			return nil, CheckAuthOutput{}, fmt.Errorf("checking auth: %w", err)
		}
	}
}

// --- clear_cache tool ---

// ClearCacheInput is the input for the clear_cache tool (no parameters needed).
type ClearCacheInput struct{}

// ClearCacheOutput is the output for the clear_cache tool.
type ClearCacheOutput struct {
	Cleared bool `json:"cleared" jsonschema:"always true on success"`
}

func handleClearCache(svc *notes.Service) mcp.ToolHandlerFor[ClearCacheInput, ClearCacheOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ClearCacheInput) (*mcp.CallToolResult, ClearCacheOutput, error) {
		svc.ClearCache()
		return nil, ClearCacheOutput{Cleared: true}, nil
	}
}

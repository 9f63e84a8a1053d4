// Package mcp provides a Model Context Protocol server for ghnotes.
// It exposes note lookup, ref discovery, auth checking, and cache clearing
// as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
)

// NewServer creates an MCP server with all ghnotes tools registered.
func NewServer(version string, svc *notes.Service, client *github.Client) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ghnotes",
		Version: version,
	}, nil)
	registerTools(server, svc, client)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools that only read GitHub.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// localAnnotations returns annotations for tools that never leave process.
func localAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all ghnotes tools to the server.
func registerTools(server *mcp.Server, svc *notes.Service, client *github.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_note",
		Description: "Fetch the git note for a commit. Checks the configured notes refs (or a single ref if given) and returns raw content plus sanitized HTML per note found.",
		Annotations: readOnlyAnnotations(),
	}, handleFetchNote(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_refs",
		Description: "List notes refs for a repository: configured refs merged with refs discovered via the GitHub matching-refs endpoint.",
		Annotations: readOnlyAnnotations(),
	}, handleGetRefs(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_auth",
		Description: "Verify the configured GitHub token and report the authenticated login.",
		Annotations: readOnlyAnnotations(),
	}, handleCheckAuth(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Evict all cached notes tree snapshots so the next fetch sees current refs.",
		Annotations: localAnnotations(),
	}, handleClearCache(svc))
}

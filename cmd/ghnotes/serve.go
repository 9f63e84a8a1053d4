// Package main provides the entry point for the ghnotes CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	ghnotesmcp "github.com/Trailblaze-work/github-git-notes-viewer/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run ghnotes as a Model Context Protocol (MCP) server over stdio.

This exposes note lookup as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).
The server keeps its notes tree cache across calls, so repeated lookups
against the same repository skip the ref resolution round trips.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "ghnotes": {
        "command": "ghnotes",
        "args": ["serve"]
      }
    }
  }

Available tools: fetch_note, get_refs, check_auth, clear_cache`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, client, err := buildService()
			if err != nil {
				return err
			}
			server := ghnotesmcp.NewServer(buildVersion(), svc, client)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// Package main provides the entry point for the ghnotes CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/output"
)

// newAuthCmd creates the auth command.
func newAuthCmd() *cobra.Command {
	return newAuthCmdInternal(nil)
}

// newAuthCmdInternal creates the auth command with optional client injection.
func newAuthCmdInternal(client *github.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Check GitHub authentication status",
		Long: `Check whether the configured GitHub token is valid.

Reports the authenticated login on success. Without a token, or with a
rejected token, explains how to fix it.

Examples:
  ghnotes auth
  ghnotes auth --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuth(cmd, client)
		},
	}
}

// runAuth executes the auth command.
func runAuth(cmd *cobra.Command, client *github.Client) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	if client == nil {
		var err error
		_, client, err = buildService()
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	user, err := client.CheckAuth(cmd.Context())
	switch {
	case err == nil:
		if isJSONMode(cmd) {
			return printer.Success(map[string]any{
				"authenticated": true,
				"login":         user.Login,
			})
		}
		printer.Print("Authenticated as %s\n", user.Login)
		return nil

	case errors.Is(err, github.ErrNoToken):
		authErr := output.NewAuthError("no GitHub token configured; run 'ghnotes config set-token' to add one")
		printer.Error(authErr)
		return authErr

	case errors.Is(err, github.ErrAuthInvalid):
		authErr := output.NewAuthErrorWithCause("GitHub rejected the configured token; run 'ghnotes config set-token' with a valid token", err)
		printer.Error(authErr)
		return authErr

	case errors.Is(err, github.ErrRateLimited):
		sysErr := output.NewSystemErrorWithCause("GitHub rate limit exceeded; try again later", err)
		printer.Error(sysErr)
		return sysErr

	default:
		sysErr := output.NewSystemErrorWithCause("failed to check authentication", err)
		printer.Error(sysErr)
		return sysErr
	}
}

// Package main provides the entry point for the ghnotes CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/config"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/output"
)

// newConfigCmd creates the config parent command with subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ghnotes settings",
		Long: `Manage ghnotes settings stored in the config directory.

Settings live in settings.yml under ~/.config/ghnotes (or
$GHNOTES_CONFIG_HOME). The file is written 0600 since it may hold a token.

Subcommands:
  show         Show current settings
  set-token    Store a GitHub API token
  set-session  Store a github.com session cookie for private web access
  add-ref      Add an extra notes ref to check

Examples:
  ghnotes config set-token ghp_xxxx
  ghnotes config set-session <user_session value>
  ghnotes config add-ref refs/notes/review
  ghnotes config show`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetTokenCmd())
	cmd.AddCommand(newConfigSetSessionCmd())
	cmd.AddCommand(newConfigAddRefCmd())
	return cmd
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd)
		},
	}
}

// runConfigShow executes the config show command. Secrets are redacted to a
// presence indicator; the raw values never leave the settings file.
func runConfigShow(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	settings, err := config.Load(config.Dir())
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to load settings", err)
		printer.Error(sysErr)
		return sysErr
	}

	if isJSONMode(cmd) {
		return printer.WriteJSON(map[string]any{
			"config_dir":   config.Dir(),
			"token_set":    settings.ResolveToken() != "",
			"session_set":  settings.SessionCookie != "",
			"refs":         settings.Refs(),
			"api_base_url": settings.APIBase(),
			"web_base_url": settings.WebBase(),
		})
	}

	printer.Section("Settings")
	printer.KeyValue("Config dir", config.Dir())
	printer.KeyValue("Token", presence(settings.ResolveToken() != ""))
	printer.KeyValue("Session cookie", presence(settings.SessionCookie != ""))
	printer.KeyValue("Notes refs", strings.Join(settings.Refs(), ", "))
	printer.KeyValue("API base", settings.APIBase())
	printer.KeyValue("Web base", settings.WebBase())
	return nil
}

// presence renders a secret as set/not set.
func presence(set bool) string {
	if set {
		return "set"
	}
	return "not set"
}

// newConfigSetTokenCmd creates the config set-token subcommand.
func newConfigSetTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token <token>",
		Short: "Store a GitHub API token",
		Long: `Store a GitHub API token in settings.

The token authenticates git-data API requests, raising the rate limit and
granting access to private repositories. The GITHUB_TOKEN environment
variable, when set, takes precedence over the stored value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(s *config.Settings) {
				s.Token = strings.TrimSpace(args[0])
			}, "Token saved")
		},
	}
}

// newConfigSetSessionCmd creates the config set-session subcommand.
func newConfigSetSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-session <cookie>",
		Short: "Store a github.com session cookie",
		Long: `Store a github.com user_session cookie value in settings.

The session cookie lets the web raw fetch strategy read notes in private
repositories without an API token. Grab the user_session cookie value from
a logged-in github.com browser session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(s *config.Settings) {
				s.SessionCookie = strings.TrimSpace(args[0])
			}, "Session cookie saved")
		},
	}
}

// newConfigAddRefCmd creates the config add-ref subcommand.
func newConfigAddRefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-ref <ref>",
		Short: "Add an extra notes ref to check",
		Long: `Add a notes ref to check in addition to refs/notes/commits.

Examples:
  ghnotes config add-ref refs/notes/review
  ghnotes config add-ref refs/notes/ci`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.TrimSpace(args[0])
			if !strings.HasPrefix(ref, "refs/notes/") {
				printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr())
				err := output.NewUserError("notes refs must start with refs/notes/")
				printer.Error(err)
				return err
			}
			return updateSettings(cmd, func(s *config.Settings) {
				for _, existing := range s.ExtraRefs {
					if existing == ref {
						return
					}
				}
				s.ExtraRefs = append(s.ExtraRefs, ref)
			}, "Ref added")
		},
	}
}

// updateSettings loads, mutates, and saves settings, then reports success.
func updateSettings(cmd *cobra.Command, mutate func(*config.Settings), message string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	dir := config.Dir()
	settings, err := config.Load(dir)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to load settings", err)
		printer.Error(sysErr)
		return sysErr
	}

	mutate(settings)

	if err := settings.Save(dir); err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to save settings", err)
		printer.Error(sysErr)
		return sysErr
	}

	if isJSONMode(cmd) {
		return printer.Success(map[string]any{"status": "ok"})
	}
	printer.Print("%s\n", message)
	return nil
}

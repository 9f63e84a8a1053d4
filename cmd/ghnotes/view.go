// Package main provides the entry point for the ghnotes CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/config"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/git"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/output"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/render"
)

// newViewCmd creates the view command.
func newViewCmd() *cobra.Command {
	return newViewCmdInternal(nil)
}

// newViewCmdInternal creates the view command with optional service injection.
// If svc is nil, a real service is built from settings when the command runs.
func newViewCmdInternal(svc *notes.Service) *cobra.Command {
	var refFlag string
	var localFlag bool
	var htmlFlag bool

	cmd := &cobra.Command{
		Use:   "view <repo> <sha>",
		Short: "View the git notes for a commit",
		Long: `View the git notes attached to a commit in a GitHub repository.

Checks refs/notes/commits plus any configured extra refs and prints every
note found. Abbreviated SHAs work as long as they are unambiguous within
the notes tree.

Examples:
  ghnotes view octo/hello 4f2a9c1                   # All configured refs
  ghnotes view octo/hello 4f2a9c1 --ref refs/notes/review
  ghnotes view https://github.com/octo/hello 4f2a9c1
  ghnotes view octo/hello 4f2a9c1 --local            # Read from local clone
  ghnotes view octo/hello 4f2a9c1 --html --json      # Include rendered HTML`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if localFlag {
				return runViewLocal(cmd, args[1], refFlag, htmlFlag)
			}
			return runView(cmd, svc, args[0], args[1], refFlag, htmlFlag)
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Check a single notes ref instead of the configured list")
	cmd.Flags().BoolVar(&localFlag, "local", false, "Read notes from the local git repository instead of GitHub")
	cmd.Flags().BoolVar(&htmlFlag, "html", false, "Print the sanitized HTML rendering instead of raw content")

	return cmd
}

// runView executes the view command against GitHub.
func runView(cmd *cobra.Command, svc *notes.Service, repoArg, sha, ref string, htmlMode bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	owner, repo, err := github.ParseRepo(repoArg)
	if err != nil {
		userErr := output.NewUserError(fmt.Sprintf("invalid repository %q: use owner/name or a GitHub URL", repoArg))
		printer.Error(userErr)
		return userErr
	}

	if svc == nil {
		var buildErr error
		svc, _, buildErr = buildService()
		if buildErr != nil {
			printer.Error(buildErr)
			return buildErr
		}
	}

	results, err := fetchViewResults(cmd, svc, owner, repo, ref, sha)
	if err != nil {
		err = classifyFetchError(err)
		printer.Error(err)
		return err
	}

	if isJSONMode(cmd) {
		return printer.WriteJSON(map[string]any{
			"repo":  owner + "/" + repo,
			"sha":   sha,
			"notes": results,
			"count": len(results),
		})
	}

	if len(results) == 0 {
		printer.Print("No notes found for %s in %s/%s\n", shortSHA(sha), owner, repo)
		return nil
	}

	for _, res := range results {
		printViewResult(printer, res, htmlMode)
	}
	return nil
}

// fetchViewResults fetches from one ref or all configured refs.
func fetchViewResults(cmd *cobra.Command, svc *notes.Service, owner, repo, ref, sha string) ([]notes.Result, error) {
	if ref != "" {
		res, err := svc.FetchNote(cmd.Context(), owner, repo, ref, sha)
		if err != nil {
			return nil, err
		}
		if !res.Found {
			return nil, nil
		}
		return []notes.Result{*res}, nil
	}
	return svc.FetchAll(cmd.Context(), owner, repo, sha)
}

// runViewLocal reads notes from the local clone via the git CLI. This needs
// no token or network once the notes ref has been fetched.
func runViewLocal(cmd *cobra.Command, sha, ref string, htmlMode bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository (remove --local to query GitHub)")
		printer.Error(err)
		return err
	}

	refs := []string{ref}
	if ref == "" {
		settings, err := config.Load(config.Dir())
		if err != nil {
			sysErr := output.NewSystemErrorWithCause("failed to load settings", err)
			printer.Error(sysErr)
			return sysErr
		}
		refs = settings.Refs()
	}

	full, err := git.ResolveSHA(cmd.Context(), sha)
	if err != nil {
		userErr := output.NewUserError(fmt.Sprintf("cannot resolve %q to a commit in this repository", sha))
		printer.Error(userErr)
		return userErr
	}

	var results []notes.Result
	for _, r := range refs {
		content, err := git.ReadNote(cmd.Context(), r, full)
		if errors.Is(err, git.ErrNoLocalNote) {
			continue
		}
		if err != nil {
			printer.Error(err)
			return err
		}
		f, html, err := render.Auto(content)
		if err != nil {
			sysErr := output.NewSystemErrorWithCause("failed to render note", err)
			printer.Error(sysErr)
			return sysErr
		}
		results = append(results, notes.Result{Ref: r, Found: true, Format: f, Content: content, HTML: html})
	}

	if isJSONMode(cmd) {
		return printer.WriteJSON(map[string]any{
			"sha":   full,
			"notes": results,
			"count": len(results),
		})
	}

	if len(results) == 0 {
		printer.Print("No local notes found for %s\n", shortSHA(full))
		return nil
	}
	for _, res := range results {
		printViewResult(printer, res, htmlMode)
	}
	return nil
}

// printViewResult prints one note in human-readable format.
func printViewResult(printer *output.Printer, res notes.Result, htmlMode bool) {
	body := res.Content
	if htmlMode {
		body = res.HTML
	}
	printer.Box(fmt.Sprintf("%s (%s)", res.Ref, res.Format), body)
}

// classifyFetchError maps GitHub access failures onto exit-coded errors with
// actionable messages. Not-found never reaches here; refs without notes are
// skipped upstream.
func classifyFetchError(err error) error {
	switch {
	case errors.Is(err, notes.ErrInvalidSHA):
		return output.NewUserError("invalid commit SHA: expected 4-40 hex characters")
	case errors.Is(err, notes.ErrAmbiguousSHA):
		return output.NewUserError("abbreviated SHA matches multiple notes; use more characters")
	case errors.Is(err, github.ErrNoToken):
		return output.NewAuthError("this repository needs authentication; run 'ghnotes config set-token' to add a GitHub token")
	case errors.Is(err, github.ErrAuthInvalid):
		return output.NewAuthErrorWithCause("GitHub rejected the configured credentials; run 'ghnotes config set-token' with a valid token", err)
	case errors.Is(err, github.ErrRateLimited):
		return output.NewSystemErrorWithCause("GitHub rate limit exceeded; configure a token with 'ghnotes config set-token' to raise the limit", err)
	case errors.Is(err, github.ErrNetworkError):
		return output.NewSystemErrorWithCause("network error talking to GitHub", err)
	default:
		return output.NewSystemErrorWithCause("GitHub API error; check 'ghnotes config show' for base URL and token settings", err)
	}
}

// shortSHA returns a shortened SHA (first 7 characters).
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

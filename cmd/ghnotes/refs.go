// Package main provides the entry point for the ghnotes CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/git"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/output"
)

// newRefsCmd creates the refs command.
func newRefsCmd() *cobra.Command {
	return newRefsCmdInternal(nil)
}

// newRefsCmdInternal creates the refs command with optional service injection.
func newRefsCmdInternal(svc *notes.Service) *cobra.Command {
	var localFlag bool

	cmd := &cobra.Command{
		Use:   "refs [<repo>]",
		Short: "List the notes refs of a repository",
		Long: `List the notes refs of a repository: the configured refs followed by
refs discovered under refs/notes/ on GitHub.

Examples:
  ghnotes refs octo/hello          # Configured + discovered refs
  ghnotes refs --local             # Refs in the local clone
  ghnotes refs octo/hello --json   # As JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if localFlag {
				return runRefsLocal(cmd)
			}
			if len(args) == 0 {
				err := output.NewUserError("specify a repository or use --local")
				output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr()).Error(err)
				return err
			}
			return runRefs(cmd, svc, args[0])
		},
	}

	cmd.Flags().BoolVar(&localFlag, "local", false, "List notes refs in the local git repository")

	return cmd
}

// runRefs executes the refs command against GitHub.
func runRefs(cmd *cobra.Command, svc *notes.Service, repoArg string) error {
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

	refs, err := svc.ListRefs(cmd.Context(), owner, repo)
	if err != nil {
		err = classifyFetchError(err)
		printer.Error(err)
		return err
	}

	return printRefs(cmd, printer, refs)
}

// runRefsLocal lists notes refs from the local clone.
func runRefsLocal(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository (remove --local to query GitHub)")
		printer.Error(err)
		return err
	}

	refs, err := git.ListNotesRefs(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	return printRefs(cmd, printer, refs)
}

// printRefs prints the refs list in the active output mode.
func printRefs(cmd *cobra.Command, printer *output.Printer, refs []string) error {
	if isJSONMode(cmd) {
		return printer.WriteJSON(map[string]any{
			"refs":  refs,
			"count": len(refs),
		})
	}

	if len(refs) == 0 {
		printer.Println("No notes refs found")
		return nil
	}

	rows := make([][]string, len(refs))
	for i, r := range refs {
		rows[i] = []string{r}
	}
	printer.Table([]string{"Ref"}, rows)
	return nil
}

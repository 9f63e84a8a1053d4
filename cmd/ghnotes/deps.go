// Package main provides the entry point for the ghnotes CLI.
package main

import (
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/config"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/github"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/notes"
	"github.com/Trailblaze-work/github-git-notes-viewer/internal/output"
)

// buildService wires settings, GitHub client, and notes service together.
// Each CLI invocation is a fresh process, so the tree cache only pays off for
// commands that touch several refs or commits in one run (and for serve).
func buildService() (*notes.Service, *github.Client, error) {
	settings, err := config.Load(config.Dir())
	if err != nil {
		return nil, nil, output.NewSystemErrorWithCause("failed to load settings", err)
	}

	client := github.NewClient(
		github.WithToken(settings.ResolveToken()),
		github.WithSessionCookie(settings.SessionCookie),
		github.WithBaseURLs(settings.APIBase(), settings.WebBase()),
	)
	return notes.NewService(client, settings.Refs(), nil), client, nil
}

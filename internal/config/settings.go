package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// settingsFile is the name of the settings file inside the config directory.
const settingsFile = "settings.yml"

// DefaultNotesRef is the ref git-notes writes to when none is specified.
const DefaultNotesRef = "refs/notes/commits"

// Settings holds the persisted configuration for ghnotes.
//
// Token authenticates API requests; SessionCookie (a github.com user_session
// value) authenticates web raw requests for private repositories. ExtraRefs
// lists notes refs to check in addition to refs/notes/commits.
type Settings struct {
	Token         string   `yaml:"token,omitempty"`
	SessionCookie string   `yaml:"session_cookie,omitempty"`
	ExtraRefs     []string `yaml:"extra_refs,omitempty"`
	APIBaseURL    string   `yaml:"api_base_url,omitempty"`
	WebBaseURL    string   `yaml:"web_base_url,omitempty"`
}

// Defaults for GitHub.com. Overridable in settings for GHE deployments.
const (
	DefaultAPIBaseURL = "https://api.github.com"
	DefaultWebBaseURL = "https://github.com"
)

// Load reads settings from the given directory.
// A missing file yields zero-value settings, not an error.
func Load(dir string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(filepath.Join(dir, settingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// Save writes settings to the given directory, creating it if needed.
// The file is written 0600 since it may hold a token.
func (s *Settings) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFile), data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// ResolveToken returns the effective API token.
// The GITHUB_TOKEN environment variable always wins over the settings file.
func (s *Settings) ResolveToken() string {
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok
	}
	return s.Token
}

// APIBase returns the API base URL, falling back to the GitHub.com default.
func (s *Settings) APIBase() string {
	if s.APIBaseURL != "" {
		return s.APIBaseURL
	}
	return DefaultAPIBaseURL
}

// WebBase returns the web base URL, falling back to the GitHub.com default.
func (s *Settings) WebBase() string {
	if s.WebBaseURL != "" {
		return s.WebBaseURL
	}
	return DefaultWebBaseURL
}

// Refs returns the notes refs to check: the default ref followed by any
// configured extra refs, deduplicated, original order preserved.
func (s *Settings) Refs() []string {
	refs := []string{DefaultNotesRef}
	seen := map[string]bool{DefaultNotesRef: true}
	for _, r := range s.ExtraRefs {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		refs = append(refs, r)
	}
	return refs
}

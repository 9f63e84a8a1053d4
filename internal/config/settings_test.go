package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Token != "" || len(s.ExtraRefs) != 0 {
		t.Errorf("expected zero-value settings, got %+v", s)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Settings{
		Token:     "ghp_testtoken",
		ExtraRefs: []string{"refs/notes/review", "refs/notes/ci"},
	}

	if err := in.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Settings may hold a token; the file must not be world-readable.
	info, err := os.Stat(filepath.Join(dir, settingsFile))
	if err != nil {
		t.Fatalf("stat settings file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("settings file mode = %o, want 0600", info.Mode().Perm())
	}

	out, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.Token != in.Token {
		t.Errorf("Token = %q, want %q", out.Token, in.Token)
	}
	if !reflect.DeepEqual(out.ExtraRefs, in.ExtraRefs) {
		t.Errorf("ExtraRefs = %v, want %v", out.ExtraRefs, in.ExtraRefs)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFile), []byte("token: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestResolveTokenEnvWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	s := &Settings{Token: "file-token"}
	if got := s.ResolveToken(); got != "env-token" {
		t.Errorf("ResolveToken() = %q, want env-token", got)
	}
}

func TestResolveTokenFallsBackToFile(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	s := &Settings{Token: "file-token"}
	if got := s.ResolveToken(); got != "file-token" {
		t.Errorf("ResolveToken() = %q, want file-token", got)
	}
}

func TestRefs(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		want  []string
	}{
		{
			name: "no extras yields default only",
			want: []string{"refs/notes/commits"},
		},
		{
			name:  "extras appended after default",
			extra: []string{"refs/notes/review"},
			want:  []string{"refs/notes/commits", "refs/notes/review"},
		},
		{
			name:  "duplicates and empties dropped",
			extra: []string{"refs/notes/commits", "", "refs/notes/review", "refs/notes/review"},
			want:  []string{"refs/notes/commits", "refs/notes/review"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{ExtraRefs: tt.extra}
			if got := s.Refs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Refs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseURLDefaults(t *testing.T) {
	s := &Settings{}
	if got := s.APIBase(); got != DefaultAPIBaseURL {
		t.Errorf("APIBase() = %q, want %q", got, DefaultAPIBaseURL)
	}
	if got := s.WebBase(); got != DefaultWebBaseURL {
		t.Errorf("WebBase() = %q, want %q", got, DefaultWebBaseURL)
	}

	s = &Settings{APIBaseURL: "https://ghe.example.com/api/v3", WebBaseURL: "https://ghe.example.com"}
	if got := s.APIBase(); got != "https://ghe.example.com/api/v3" {
		t.Errorf("APIBase() = %q, want override", got)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "1.2.3") {
		t.Errorf("--version output should contain version: %q", output)
	}
	if !strings.Contains(output, "ghnotes") {
		t.Errorf("--version output should contain 'ghnotes': %q", output)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()

	expectations := []string{
		"ghnotes",
		"Usage:",
		"view",
		"refs",
		"serve",
		"--json",
	}

	for _, expected := range expectations {
		if !strings.Contains(output, expected) {
			t.Errorf("--help output should contain %q: %q", expected, output)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}

	output := buf.String()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, output)
	}

	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", output)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", output)
	}
}

func TestBuildVersion(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() { version, commit, date = origVersion, origCommit, origDate })

	version, commit, date = "dev", "none", "unknown"
	if got := buildVersion(); got != "dev" {
		t.Errorf("buildVersion() = %q, want dev", got)
	}

	version, commit, date = "1.0.0", "abcdef1234567890", "2026-01-01"
	got := buildVersion()
	if !strings.Contains(got, "1.0.0") || !strings.Contains(got, "abcdef1") {
		t.Errorf("buildVersion() = %q, want version and short commit", got)
	}
	if strings.Contains(got, "abcdef12") {
		t.Errorf("buildVersion() = %q, commit should be truncated to 7 chars", got)
	}
}

func TestIsJSONMode(t *testing.T) {
	cmd := newRootCmd()
	if isJSONMode(cmd) {
		t.Error("isJSONMode() = true before flag is set")
	}
	if err := cmd.PersistentFlags().Set("json", "true"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}
	if !isJSONMode(cmd) {
		t.Error("isJSONMode() = false after setting --json")
	}
}

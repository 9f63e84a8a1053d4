// Package envfile loads KEY=VALUE pairs from .env files into the process
// environment. ghnotes reads these at startup so a GITHUB_TOKEN kept in a
// gitignored .env.local works without exporting it in every shell. Variables
// already present in the environment always win over file values.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load applies a .env file to the environment. A missing file is not an
// error; malformed lines are skipped. Keys already set in the environment
// are left untouched.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}

		// Environment wins over file values.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	return nil
}

// parseEnvLine splits one KEY=VALUE line, tolerating a leading "export " and
// single or double quotes around the value.
func parseEnvLine(line string) (key, value string, ok bool) {
	before, after, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(before), "export "))
	value = strings.TrimSpace(after)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}

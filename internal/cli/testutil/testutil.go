// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// EnvVars lists every environment variable acro reads.
var EnvVars = []string{
	"ACRO_FILE",
	"ACRO_COLUMN",
	"DEFINITION_COLUMN",
	"ACRO_HEADER",
	"ACRO_COLOR",
	"ACRO_DELIMITER",
	"ACRO_OUTPUT",
	"ACRO_CONFIG",
}

// ClearEnv unsets every acro environment variable for the duration of the test.
func ClearEnv(t *testing.T) {
	t.Helper()
	for _, name := range EnvVars {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("failed to unset %s: %v", name, err)
		}
	}
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return path
}

// Result holds what a command wrote and returned.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Run executes cmd with args, feeding stdin and capturing both output streams.
func Run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) Result {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return Result{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertHasANSI checks that a string contains at least one ANSI escape code.
func AssertHasANSI(t *testing.T, s string) {
	t.Helper()
	if !ansiPattern.MatchString(s) {
		t.Errorf("string contains no ANSI escape codes: %q", s)
	}
}

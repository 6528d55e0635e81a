//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint string
	BinaryPath  string
	Enabled     bool
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("RMAPI_API_ENDPOINT"),
		BinaryPath:  getBinaryPath(),
		Enabled:     os.Getenv("RMAPI_INTEGRATION") == "true",
		Verbose:     os.Getenv("RMAPI_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the rmapi binary.
func getBinaryPath() string {
	if path := os.Getenv("RMAPI_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../rmapi", "./rmapi", "../rmapi"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "rmapi"
}

// SkipIfDisabled skips the test unless live runs were requested and the
// binary is available.
func (config *TestConfig) SkipIfDisabled(t *testing.T) {
	t.Helper()

	if !config.Enabled {
		t.Skip("RMAPI_INTEGRATION not set, skipping integration test")
	}

	_, err := exec.LookPath(config.BinaryPath)
	if err != nil {
		t.Skipf("rmapi binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs the rmapi binary.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{config: config, t: t}
}

// Run executes an rmapi command with JSON output and returns its output.
// The config file is isolated in a temporary directory.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append(args, "--output", "json", "--config", runner.t.TempDir()+"/config.yml")
	if runner.config.APIEndpoint != "" {
		args = append(args, "--api", runner.config.APIEndpoint)
	}

	cmd := exec.Command(runner.config.BinaryPath, args...) //nolint:gosec // binary path comes from the test environment

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON runs a command and decodes its JSON output into target.
func (runner *CommandRunner) RunJSON(target interface{}, args ...string) error {
	stdout, _, err := runner.Run(args...)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(stdout), target)
}

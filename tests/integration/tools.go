// Package integration holds tests that need resources outside the
// repository: a full KJV corpus, or the sqlite3 command-line tool.
package integration

import (
	"os"
	"os/exec"
	"sync"
	"testing"
)

// CorpusEnv names the environment variable pointing at a KJV corpus file
// (.bar, .db or .sqlite).
const CorpusEnv = "BAR_KJV"

// Tool represents an external tool that may be required for tests.
type Tool struct {
	Name        string   // Display name
	Command     string   // Command to check
	Args        []string // Args to verify tool works
	Description string   // What the tool is used for
}

// ToolSQLite3 inspects databases written by the store.
var ToolSQLite3 = Tool{
	Name:        "sqlite3",
	Command:     "sqlite3",
	Args:        []string{"--version"},
	Description: "SQLite command-line interface",
}

var (
	toolCache   = make(map[string]bool)
	toolCacheMu sync.RWMutex
)

// HasTool checks if a tool is available on the system.
// Results are cached.
func HasTool(tool Tool) bool {
	toolCacheMu.RLock()
	if available, ok := toolCache[tool.Command]; ok {
		toolCacheMu.RUnlock()
		return available
	}
	toolCacheMu.RUnlock()

	_, err := exec.LookPath(tool.Command)
	available := err == nil

	toolCacheMu.Lock()
	toolCache[tool.Command] = available
	toolCacheMu.Unlock()

	return available
}

// RequireTool skips the test if the specified tool is not available.
func RequireTool(t *testing.T, tool Tool) {
	t.Helper()
	if !HasTool(tool) {
		t.Skipf("skipping: %s (%s) not installed", tool.Name, tool.Command)
	}
}

// RunTool executes a tool and returns its output.
func RunTool(t *testing.T, tool Tool, args ...string) (string, error) {
	t.Helper()
	RequireTool(t, tool)

	cmd := exec.Command(tool.Command, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// RequireCorpus returns the KJV corpus path or skips the test.
func RequireCorpus(t *testing.T) string {
	t.Helper()
	path := os.Getenv(CorpusEnv)
	if path == "" {
		t.Skipf("skipping: %s not set", CorpusEnv)
	}
	if _, err := os.Stat(path); err != nil {
		t.Skipf("skipping: %s: %v", CorpusEnv, err)
	}
	return path
}

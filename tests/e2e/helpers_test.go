package e2e_test

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testProject creates an isolated project directory for driving the rook
// binary end to end.
type testProject struct {
	Dir        string
	BinaryPath string
	t          *testing.T
}

// newTestProject builds the rook binary into a fresh temp directory and
// returns a testProject ready for use. Must be called from a test function;
// uses t.Helper() to mark itself accordingly.
func newTestProject(t *testing.T) *testProject {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("E2E tests are not supported on Windows")
	}

	dir := t.TempDir()

	// Build rook binary into temp dir.
	binary := filepath.Join(dir, "rook")
	build := exec.Command("go", "build", "-o", binary, "./cmd/rook")
	build.Dir = projectRoot()
	out, err := build.CombinedOutput()
	require.NoError(t, err, "building rook: %s", string(out))

	return &testProject{Dir: dir, BinaryPath: binary, t: t}
}

// projectRoot returns the absolute path to the root of the rook repository.
// It uses runtime.Caller(0) to find this source file's location and navigates
// two directories up (tests/e2e/ -> tests/ -> repo root).
func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	// thisFile is <repo>/tests/e2e/helpers_test.go; root is two dirs up.
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

// writeConfig writes content to rook.toml in tp.Dir.
func (tp *testProject) writeConfig(content string) {
	tp.t.Helper()
	err := os.WriteFile(filepath.Join(tp.Dir, "rook.toml"), []byte(content), 0o644)
	require.NoError(tp.t, err)
}

// writeTasksJSON writes a JSON task list to name in tp.Dir and returns the
// file's absolute path.
func (tp *testProject) writeTasksJSON(name, content string) string {
	tp.t.Helper()
	path := filepath.Join(tp.Dir, name)
	require.NoError(tp.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeTaskSpec writes a task markdown file to docs/tasks/<id>-<slug>.md.
// The filename shape matters: the spec discoverer only picks up files
// matching "TNNN-<slug>.md".
func (tp *testProject) writeTaskSpec(id, slug, content string) {
	tp.t.Helper()
	tasksDir := filepath.Join(tp.Dir, "docs", "tasks")
	require.NoError(tp.t, os.MkdirAll(tasksDir, 0o755))
	err := os.WriteFile(filepath.Join(tasksDir, id+"-"+slug+".md"), []byte(content), 0o644)
	require.NoError(tp.t, err)
}

// run creates an exec.Cmd for rook running inside the project directory.
func (tp *testProject) run(args ...string) *exec.Cmd {
	cmd := exec.Command(tp.BinaryPath, args...)
	cmd.Dir = tp.Dir
	cmd.Env = append(os.Environ(),
		"NO_COLOR=1", // disable ANSI color in output
	)
	return cmd
}

// runExpectSuccess runs rook and asserts exit code 0.
// Returns combined stdout+stderr output.
func (tp *testProject) runExpectSuccess(args ...string) string {
	tp.t.Helper()
	cmd := tp.run(args...)
	out, err := cmd.CombinedOutput()
	require.NoError(tp.t, err, "rook %v failed:\n%s", args, string(out))
	return string(out)
}

// runExpectFailure runs rook and asserts a non-zero exit code.
// Returns combined output and the exit code.
func (tp *testProject) runExpectFailure(args ...string) (string, int) {
	tp.t.Helper()
	cmd := tp.run(args...)
	out, err := cmd.CombinedOutput()
	require.Error(tp.t, err, "rook %v expected to fail but succeeded:\n%s", args, string(out))
	var exitErr *exec.ExitError
	require.True(tp.t, errors.As(err, &exitErr), "expected *exec.ExitError, got %T: %v", err, err)
	return string(out), exitErr.ExitCode()
}

// runSplit runs rook and returns stdout and stderr separately along with the
// exit code. Used by tests that assert on output routing.
func (tp *testProject) runSplit(args ...string) (stdout, stderr string, exitCode int) {
	tp.t.Helper()
	cmd := tp.run(args...)
	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		require.True(tp.t, errors.As(err, &exitErr), "expected *exec.ExitError, got %T: %v", err, err)
		exitCode = exitErr.ExitCode()
	}
	return outBuf.String(), errBuf.String(), exitCode
}

// minimalConfig returns a minimal rook.toml pointing at the default tasks
// directory.
func minimalConfig() string {
	return `[project]
name = "test-project"
tasks_dir = "docs/tasks"
`
}

// sampleTasksJSON returns a four-task JSON fixture forming a linear chain
// T001 (done) -> T002 -> T003 -> T004, so the critical path is
// [T002, T003, T004].
func sampleTasksJSON() string {
	return `{
  "tasks": [
    {"id": "T001", "title": "Set up database schema", "status": "done", "dependencies": []},
    {"id": "T002", "title": "Implement user model", "status": "pending", "dependencies": ["T001"]},
    {"id": "T003", "title": "Build authentication API", "status": "pending", "dependencies": ["T002"]},
    {"id": "T004", "title": "Add login page", "status": "pending", "dependencies": ["T003"]}
  ]
}`
}

// cyclicTasksJSON returns a fixture with a two-task dependency cycle.
func cyclicTasksJSON() string {
	return `{
  "tasks": [
    {"id": "T001", "title": "First of the pair", "status": "pending", "dependencies": ["T002"]},
    {"id": "T002", "title": "Second of the pair", "status": "pending", "dependencies": ["T001"]}
  ]
}`
}

// sampleTaskSpec returns task spec markdown content for use in tests.
// deps is an optional list of dependency task IDs (e.g., []string{"T001"}).
func sampleTaskSpec(id, name, status string, deps []string) string {
	depValue := "None"
	if len(deps) > 0 {
		depValue = strings.Join(deps, ", ")
	}
	return fmt.Sprintf(`# %s: %s

## Metadata
| Field | Value |
|-------|-------|
| Status | %s |
| Dependencies | %s |

## Goal
Test task for E2E testing.
`, id, name, status, depValue)
}

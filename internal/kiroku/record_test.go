package kiroku

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndInstallWritesScript(t *testing.T) {
	dir := t.TempDir()
	testInit(t, map[string]string{
		"KIROKU_PACKAGE_DIR": dir,
		"KIROKU_CACHE_DIR":   dir,
	})

	lines := []string{"noise", testCompileLine, testLinkLine}
	require.NoError(t, generateAndInstall(lines, true))

	body, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), testCompileLine+" -suppress-warnings")
	assert.Contains(t, string(body), testLinkLine)
}

func TestGenerateAndInstallMissingCommand(t *testing.T) {
	dir := t.TempDir()
	testInit(t, map[string]string{
		"KIROKU_PACKAGE_DIR": dir,
		"KIROKU_CACHE_DIR":   dir,
	})

	err := generateAndInstall([]string{testLinkLine}, true)
	require.ErrorIs(t, err, errMissingCommand)

	// No partial script may be written.
	assert.NoFileExists(t, scriptPath)
}

// writeFakeBuildTool creates an executable that prints a canned trace,
// standing in for 'swift build -v'. The trace lines carry shell
// metacharacters, so they live in a data file the tool cats back.
func writeFakeBuildTool(t *testing.T, dir string, lines []string, exitCode int) string {
	t.Helper()
	path := filepath.Join(dir, "fake-swift")
	trace := path + ".trace"
	require.NoError(t, os.WriteFile(trace, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	script := "#!/bin/sh\ncat \"" + trace + "\"\n"
	if exitCode != 0 {
		script += "exit 1\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestHandleRecordCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	tool := writeFakeBuildTool(t, dir, []string{
		"Compile Swift Module 'Action' (1 sources)",
		testCompileLine,
		testLinkLine,
	}, 0)
	testInit(t, map[string]string{
		"KIROKU_PACKAGE_DIR": dir,
		"KIROKU_CACHE_DIR":   dir,
		"KIROKU_BUILD_CMD":   tool,
	})

	execCtx := NewExecutor(context.Background())
	require.NoError(t, handleRecordCommand([]string{"-quiet"}, execCtx))

	assert.FileExists(t, scriptPath)
	assert.FileExists(t, scriptPath+".b3")

	traces, err := listTraces()
	require.NoError(t, err)
	require.Len(t, traces, 1)

	raw, err := readTrace(traces[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), testCompileLine)
}

func TestHandleRecordCommandBuildFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	tool := writeFakeBuildTool(t, dir, []string{testCompileLine, testLinkLine}, 1)
	testInit(t, map[string]string{
		"KIROKU_PACKAGE_DIR": dir,
		"KIROKU_CACHE_DIR":   dir,
		"KIROKU_BUILD_CMD":   tool,
	})

	execCtx := NewExecutor(context.Background())
	err := handleRecordCommand([]string{"-quiet"}, execCtx)
	require.Error(t, err)

	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)

	// The trace is not salvaged and no script is generated.
	assert.NoFileExists(t, scriptPath)
}

func TestHandleExtractCommandFromFile(t *testing.T) {
	dir := t.TempDir()
	testInit(t, map[string]string{
		"KIROKU_PACKAGE_DIR": dir,
		"KIROKU_CACHE_DIR":   dir,
	})

	trace := filepath.Join(dir, "trace.log")
	content := testCompileLine + "\n" + testLinkLine + "\n"
	require.NoError(t, os.WriteFile(trace, []byte(content), 0o644))

	require.NoError(t, handleExtractCommand([]string{"-script", trace}))
	assert.FileExists(t, scriptPath)
}

func TestHandleExtractCommandMissingCommands(t *testing.T) {
	dir := t.TempDir()
	testInit(t, map[string]string{
		"KIROKU_PACKAGE_DIR": dir,
		"KIROKU_CACHE_DIR":   dir,
	})

	trace := filepath.Join(dir, "trace.log")
	require.NoError(t, os.WriteFile(trace, []byte("nothing useful\n"), 0o644))

	err := handleExtractCommand([]string{trace})
	assert.ErrorIs(t, err, errMissingCommand)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeCase(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNoArguments(t *testing.T) {
	code, stdout, stderr := runCLI(t)
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Equal(t, "Error: Please provide an input file path\n", stderr)
}

func TestDumpAndExitCode(t *testing.T) {
	dir := t.TempDir()
	code, stdout, stderr := runCLI(t, "--color", "off", writeCase(t, dir, "ok.py", "x = 1\n"))
	require.Equal(t, 0, code, stderr)
	require.Equal(t, 5, strings.Count(stdout, "\n"))
	require.True(t, strings.HasSuffix(stdout, "[@4,6:5='<EOF>',<EOF>,2:0]\n"))

	code, _, stderr = runCLI(t, "--color", "off", "--show-codes", writeCase(t, dir, "bad.py", "x = = 1\ny = = 2\n"))
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "line 1:4 [SYN")
}

func TestExitCodeClamped(t *testing.T) {
	path := writeCase(t, t.TempDir(), "many.py", strings.Repeat("x = = 1\n", 300))
	code, _, stderr := runCLI(t, "--color", "off", "--max-diagnostics", "1", path)
	require.Equal(t, 255, code)
	require.Contains(t, stderr, "more diagnostics not shown")
}

func TestInvalidColor(t *testing.T) {
	path := writeCase(t, t.TempDir(), "ok.py", "x\n")
	code, _, stderr := runCLI(t, "--color", "sometimes", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Error: invalid --color value")
}

func TestTraceToStderr(t *testing.T) {
	path := writeCase(t, t.TempDir(), "ok.py", "x\n")
	code, stdout, stderr := runCLI(t, "--trace", "-", "--trace-level", "phase", path)
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "→ run")
	require.Contains(t, stderr, "← parse")
	require.NotContains(t, stdout, "→")
}

func TestGrammarsCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "grammars")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "python\t")
	require.Contains(t, stdout, "starlark\t")
	require.Contains(t, stdout, "symbols:  INDENT DEDENT NAME")
	require.Contains(t, stdout, "channels: DEFAULT_TOKEN_CHANNEL HIDDEN")

	code, stdout, _ = runCLI(t, "grammars", "--format", "json")
	require.Equal(t, 0, code)
	var payload []grammarPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload, 2)
	require.Equal(t, "python", payload[0].Name)
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json", "--full")
	require.Equal(t, 0, code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, "grun", payload["tool"])
	require.NotEmpty(t, payload["version"])
	require.Equal(t, "unknown", payload["git_commit"])

	code, stdout, _ = runCLI(t, "--color", "off", "version")
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(stdout, "grun "))
}

func TestSuiteCommand(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "a.py", "x = 1\n")
	writeCase(t, dir, "b.py", "def f():\n    return 1\n")

	code, stdout, stderr := runCLI(t, "--color", "off", "suite", "--ui", "off", "--no-cache", "--update", dir)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "2 cases: 0 passed, 0 cached, 2 updated, 0 failed")

	code, stdout, _ = runCLI(t, "--color", "off", "suite", "--ui", "off", "--no-cache", dir)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "2 passed")

	writeCase(t, dir, "b.py.tokens", "garbage\n")
	code, stdout, _ = runCLI(t, "--color", "off", "suite", "--ui", "off", "--no-cache", dir)
	require.Equal(t, 1, code)
	require.Contains(t, stdout, "FAIL b.py: line 1:")
}

func TestSuiteBadManifest(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "grun.toml", "grammar = \"cobol\"\n")
	code, _, stderr := runCLI(t, "suite", "--ui", "off", "--no-cache", dir)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Error: unknown grammar")
}

func TestSuiteCommandOnBundledConformance(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "conformance")
	code, stdout, stderr := runCLI(t, "--color", "off", "suite", "--ui", "off", "--no-cache", dir)
	require.Equal(t, 0, code, stdout+stderr)
	require.Contains(t, stdout, "2 cases: 2 passed, 0 cached, 0 updated, 0 failed")
}

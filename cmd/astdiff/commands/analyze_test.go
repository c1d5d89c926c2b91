package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/astdiff/pkg/analyzer"
)

const (
	testOldSource = "def greet(name):\n    print(name)\n"
	testNewSource = "def greet(name):\n    print(name)\n\ndef new_function():\n    pass\n"
)

// writeFixtures writes the two module versions into a temp dir and returns
// their paths.
func writeFixtures(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.py")
	newPath := filepath.Join(dir, "new.py")

	require.NoError(t, os.WriteFile(oldPath, []byte(testOldSource), 0o600))
	require.NoError(t, os.WriteFile(newPath, []byte(testNewSource), 0o600))

	return oldPath, newPath
}

func TestAnalyzeCommandWritesJSONReport(t *testing.T) {
	oldPath, newPath := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{oldPath, newPath, "-o", outPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var report analyzer.Report

	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, []string{"new_function"}, report.Added)
	assert.Empty(t, report.Removed)
	assert.Empty(t, report.Functions)
}

func TestAnalyzeCommandSummaryFormat(t *testing.T) {
	oldPath, newPath := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.txt")

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{oldPath, newPath, "-f", "summary", "-o", outPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "+ new_function")
}

func TestAnalyzeCommandRejectsUnknownFormat(t *testing.T) {
	oldPath, newPath := writeFixtures(t)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{oldPath, newPath, "-f", "xml"})

	assert.Error(t, cmd.Execute())
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	_, newPath := writeFixtures(t)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.py"), newPath})

	assert.Error(t, cmd.Execute())
}

func TestAnalyzeCommandParseErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.py")
	newPath := filepath.Join(dir, "new.py")

	require.NoError(t, os.WriteFile(oldPath, []byte("def broken(:\n"), 0o600))
	require.NoError(t, os.WriteFile(newPath, []byte(testNewSource), 0o600))

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{oldPath, newPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "old")
}

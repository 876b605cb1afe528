package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "output")
	second := filepath.Join(base, "data", "archive")

	require.NoError(t, EnsureDirectories(first, second, ""))

	for _, dir := range []string{first, second} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureDirectories_ExistingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, EnsureDirectories(dir))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "nope.txt")))
	assert.False(t, FileExists(dir), "directories do not count as files")
}

func TestExpandNamePattern(t *testing.T) {
	assert.Equal(t, "sales_report.txt", ExpandNamePattern("sales_report.txt"))

	expanded := ExpandNamePattern("report_{uuid}.txt")
	assert.NotContains(t, expanded, "{uuid}")
	assert.Regexp(t, regexp.MustCompile(`^report_[0-9a-f-]{36}\.txt$`), expanded)

	expanded = ExpandNamePattern("report_{timestamp}.txt")
	assert.Regexp(t, regexp.MustCompile(`^report_\d{8}_\d{6}\.txt$`), expanded)
}

func TestExpandNamePattern_UniquePerCall(t *testing.T) {
	assert.NotEqual(t, ExpandNamePattern("{uuid}"), ExpandNamePattern("{uuid}"))
}

func TestArchiveFile(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "sales.txt")
	archiveDir := filepath.Join(base, "archive")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0644))

	dest, err := ArchiveFile(src, archiveDir)
	require.NoError(t, err)

	assert.NoFileExists(t, src)
	assert.True(t, strings.HasSuffix(dest, "_sales.txt"))
	assert.Equal(t, archiveDir, filepath.Dir(dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestArchiveFile_MissingSource(t *testing.T) {
	base := t.TempDir()
	_, err := ArchiveFile(filepath.Join(base, "nope.txt"), filepath.Join(base, "archive"))
	assert.Error(t, err)
}

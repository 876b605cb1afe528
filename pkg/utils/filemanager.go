// =============================================================================
// Sales Analytics - File Manager Utility
// =============================================================================
//
// File management helpers for the pipeline:
//   - Directory creation
//   - Input archival (moving the processed data file after a clean run)
//   - Output file naming with placeholder expansion
//
// ARCHIVAL STRATEGY:
//   - The input file is moved into the archive directory only after a
//     fully successful run, with a timestamp prefix so repeated runs of
//     the same file name never collide.
//   - On failure the input file stays where it is.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDirectories creates every given directory if it does not exist.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ExpandNamePattern expands output file name placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current time as YYYYMMDD_HHMMSS
//
// A pattern without placeholders is returned unchanged.
func ExpandNamePattern(pattern string) string {
	name := pattern
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	return name
}

// ArchiveFile moves a file into the archive directory with a timestamp
// prefix.
//
// RETURNS:
//   - The archived file path.
//   - An error if the move fails. Falls back to copy+delete for
//     cross-device moves.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(path))
	dest := filepath.Join(archiveDir, name)

	if err := os.Rename(path, dest); err != nil {
		if err := copyFile(path, dest); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", path, err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove original after archiving: %w", err)
		}
	}

	return dest, nil
}

// copyFile copies src to dest, preserving contents only.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}

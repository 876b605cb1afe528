// =============================================================================
// Sales Analytics - Line Reader
// =============================================================================
//
// This module loads the raw sales data file as text lines. Legacy exports
// arrive in a handful of encodings, so the reader tries a fixed ordered
// list of decoders until one succeeds:
//   1. UTF-8
//   2. ISO 8859-1 (Latin-1)
//   3. Windows-1252
//
// The first line of the file is the column header and is skipped; blank
// lines are dropped. The reader never repairs data, it only decodes and
// splits.
//
// =============================================================================

package reader

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadSalesData reads the sales file and returns its data lines with the
// header removed and blank lines dropped.
//
// RETURNS:
//   - The cleaned data lines.
//   - An error if the file is missing or cannot be decoded. Callers treat
//     this as "zero transactions", not as a fatal condition.
func ReadSalesData(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales data: %w", err)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	return splitDataLines(text), nil
}

// decode converts raw file bytes to a string, trying each supported
// encoding in order.
//
// Note: the single-byte fallbacks can decode any byte sequence, so UTF-8
// must be tried first or it would never be reached.
func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err == nil {
			return string(decoded), nil
		}
	}

	return "", fmt.Errorf("could not decode sales data with supported encodings")
}

// splitDataLines splits decoded text into trimmed data lines, skipping the
// header row and any blank lines.
func splitDataLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	cleaned := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return cleaned
}

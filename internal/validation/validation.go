// Package validation guards the ingestion layer against unusable paths and
// oversized inputs.
package validation

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
)

// Resource limits (CWE-400).
const (
	// MaxInputSize is the largest accepted input, measured after
	// decompression (4 MB).
	MaxInputSize = 4 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// ValidatePath rejects empty or overlong paths and paths containing null or
// control characters.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewValidation("path", "path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation("path", fmt.Sprintf("path longer than %d bytes", MaxPathLength))
	}
	if strings.Contains(path, "\x00") {
		return errors.NewValidation("path", "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation("path", "control character not allowed")
		}
	}
	return nil
}

// ReadLimited reads all of r, failing once more than limit bytes arrive.
// Read failures are returned unwrapped for the caller to classify.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.NewValidation("size", fmt.Sprintf("input exceeds %d bytes", limit))
	}
	return data, nil
}

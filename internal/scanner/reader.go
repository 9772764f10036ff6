package scanner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/importsweep/importsweep/internal/model"
)

// maxSourceSize limits how much of a single source file is read.
// Source files beyond this are generated bundles, not hand-written code,
// and scanning them would only produce noise.
const maxSourceSize = 4 * 1024 * 1024 // 4MB

// ReadSource reads and decodes one corpus file into an immutable
// SourceFile. rel is the path relative to the corpus root, which becomes
// SourceFile.Path so every downstream structure carries portable paths.
//
// The decoder strips a UTF-8 BOM and transcodes UTF-16 (either endianness,
// BOM required) to UTF-8. Files without a BOM are passed through as-is.
// Any read or decode failure is returned to the caller, which records it
// as a file-level error and continues the run.
func ReadSource(root, rel string) (*model.SourceFile, error) {
	f, err := os.Open(filepath.Join(root, rel)) //nolint:gosec // Paths come from corpus traversal
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only descriptor

	// BOMOverride switches to UTF-16 when a BOM announces it and
	// otherwise leaves the byte stream untouched apart from a UTF-8 BOM.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := transform.NewReader(io.LimitReader(f, maxSourceSize), decoder)

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source file: %w", err)
	}

	return &model.SourceFile{
		Path:    rel,
		Content: string(content),
	}, nil
}

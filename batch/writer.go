package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/linea/model"
)

// WriteOutline writes an outline to path in the output schema:
// two-space indent, non-ASCII preserved. The write is atomic: the
// document lands in a temp file first and is renamed into place, so
// an aborted document never leaves a partial output file.
func WriteOutline(path string, outline model.Outline) error {
	if err := outline.Validate(); err != nil {
		return fmt.Errorf("outline for %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outline); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode outline for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// OutputPath maps an input document path to its output file path:
// the same relative location under outputDir with a .json extension.
func OutputPath(outputDir, docPath string) string {
	rel := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".json"
	return filepath.Join(outputDir, filepath.FromSlash(rel))
}

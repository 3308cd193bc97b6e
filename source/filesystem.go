package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemConfig holds configuration for a FilesystemSource.
type FilesystemConfig struct {
	// BaseDir is the directory to traverse.
	BaseDir string

	// IncludePatterns is a list of glob patterns to include, matched
	// against paths relative to BaseDir. Supports ** wildcards.
	// Default: **/*.pdf
	IncludePatterns []string

	// ExcludePatterns is a list of glob patterns to exclude. Matching
	// files are skipped; matching directories are not descended into.
	ExcludePatterns []string
}

// DefaultFilesystemConfig returns a configuration that picks up every
// PDF beneath baseDir.
func DefaultFilesystemConfig(baseDir string) FilesystemConfig {
	return FilesystemConfig{
		BaseDir:         baseDir,
		IncludePatterns: []string{"**/*.pdf", "**/*.PDF"},
		ExcludePatterns: []string{".git/**"},
	}
}

// FilesystemSource traverses a local directory and yields its
// matching files.
type FilesystemSource struct {
	config FilesystemConfig
}

// NewFilesystemSource creates a filesystem source. Patterns are
// validated up front so a bad glob fails the run instead of silently
// matching nothing.
func NewFilesystemSource(config FilesystemConfig) (*FilesystemSource, error) {
	if config.BaseDir == "" {
		return nil, fmt.Errorf("filesystem source: BaseDir is required")
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.pdf", "**/*.PDF"}
	}
	if err := ValidatePatterns(config.IncludePatterns); err != nil {
		return nil, fmt.Errorf("filesystem source: %w", err)
	}
	if err := ValidatePatterns(config.ExcludePatterns); err != nil {
		return nil, fmt.Errorf("filesystem source: %w", err)
	}
	return &FilesystemSource{config: config}, nil
}

// Type returns "filesystem" as the source type.
func (fs *FilesystemSource) Type() string {
	return "filesystem"
}

// Traverse walks the directory tree and yields an Item for every
// matching file.
func (fs *FilesystemSource) Traverse(ctx context.Context) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		defer close(errs)

		err := filepath.Walk(fs.config.BaseDir, func(path string, info os.FileInfo, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				return err
			}

			relPath, err := filepath.Rel(fs.config.BaseDir, path)
			if err != nil {
				relPath = path
			}
			relPath = filepath.ToSlash(relPath)

			if matchesAnyPattern(relPath, fs.config.ExcludePatterns) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.IsDir() {
				// Only ** patterns can match below a subdirectory
				if relPath != "." && !fs.couldMatchBelow() {
					return filepath.SkipDir
				}
				return nil
			}

			if !matchesAnyPattern(relPath, fs.config.IncludePatterns) {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			select {
			case items <- Item{
				Path:    relPath,
				Content: content,
				Metadata: map[string]any{
					"source_type": "filesystem",
					"file_size":   info.Size(),
					"mod_time":    info.ModTime(),
				},
			}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		if err != nil {
			errs <- err
		}
	}()

	return items, errs
}

// couldMatchBelow reports whether any include pattern can match files
// in a subdirectory that does not itself match.
func (fs *FilesystemSource) couldMatchBelow() bool {
	for _, pattern := range fs.config.IncludePatterns {
		if strings.Contains(pattern, "**") {
			return true
		}
	}
	return false
}

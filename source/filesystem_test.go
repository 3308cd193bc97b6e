package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeTree lays out files under a temp dir and returns its root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func collect(t *testing.T, s Source) ([]Item, error) {
	t.Helper()
	items, errs := s.Traverse(context.Background())
	var out []Item
	for item := range items {
		out = append(out, item)
	}
	return out, <-errs
}

func TestFilesystemSourceFindsPDFs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.pdf":          "%PDF-1.4 a",
		"sub/b.pdf":      "%PDF-1.4 b",
		"sub/deep/c.pdf": "%PDF-1.4 c",
		"notes.txt":      "not a pdf",
		"sub/image.png":  "png bytes",
	})

	fs, err := NewFilesystemSource(DefaultFilesystemConfig(root))
	if err != nil {
		t.Fatal(err)
	}

	items, err := collect(t, fs)
	if err != nil {
		t.Fatalf("Traverse failed: %v", err)
	}

	var paths []string
	for _, item := range items {
		paths = append(paths, item.Path)
	}
	sort.Strings(paths)

	want := []string{"a.pdf", "sub/b.pdf", "sub/deep/c.pdf"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestFilesystemSourceContent(t *testing.T) {
	root := writeTree(t, map[string]string{"doc.pdf": "%PDF-1.4 content"})

	fs, err := NewFilesystemSource(DefaultFilesystemConfig(root))
	if err != nil {
		t.Fatal(err)
	}

	items, err := collect(t, fs)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if string(items[0].Content) != "%PDF-1.4 content" {
		t.Errorf("Content = %q", items[0].Content)
	}
	if items[0].Metadata["source_type"] != "filesystem" {
		t.Errorf("Metadata source_type = %v", items[0].Metadata["source_type"])
	}
}

func TestFilesystemSourceExcludes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.pdf":        "%PDF-1.4",
		"drafts/skip.pdf": "%PDF-1.4",
	})

	config := DefaultFilesystemConfig(root)
	config.ExcludePatterns = append(config.ExcludePatterns, "drafts/**")
	fs, err := NewFilesystemSource(config)
	if err != nil {
		t.Fatal(err)
	}

	items, err := collect(t, fs)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Path != "keep.pdf" {
		t.Errorf("Expected only keep.pdf, got %+v", items)
	}
}

func TestFilesystemSourceTopLevelOnly(t *testing.T) {
	root := writeTree(t, map[string]string{
		"top.pdf":        "%PDF-1.4",
		"nested/sub.pdf": "%PDF-1.4",
	})

	config := FilesystemConfig{BaseDir: root, IncludePatterns: []string{"*.pdf"}}
	fs, err := NewFilesystemSource(config)
	if err != nil {
		t.Fatal(err)
	}

	items, err := collect(t, fs)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Path != "top.pdf" {
		t.Errorf("Expected only top.pdf, got %+v", items)
	}
}

func TestFilesystemSourceMissingDir(t *testing.T) {
	fs, err := NewFilesystemSource(DefaultFilesystemConfig(filepath.Join(t.TempDir(), "absent")))
	if err != nil {
		t.Fatal(err)
	}

	_, err = collect(t, fs)
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}

func TestFilesystemSourceCancellation(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.pdf": "%PDF-1.4",
		"b.pdf": "%PDF-1.4",
	})

	fs, err := NewFilesystemSource(DefaultFilesystemConfig(root))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, errs := fs.Traverse(ctx)
	for range items {
	}
	if err := <-errs; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewFilesystemSourceValidation(t *testing.T) {
	if _, err := NewFilesystemSource(FilesystemConfig{}); err == nil {
		t.Error("Expected error for empty BaseDir")
	}

	config := FilesystemConfig{BaseDir: ".", IncludePatterns: []string{"[bad"}}
	if _, err := NewFilesystemSource(config); err == nil {
		t.Error("Expected error for invalid include pattern")
	}
}

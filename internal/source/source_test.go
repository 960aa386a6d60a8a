package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// brokenFS fails reads for one file name.
type brokenFS struct {
	fstest.MapFS
	broken string
}

var errDiskRead = errors.New("disk read error")

func (b brokenFS) ReadFile(name string) ([]byte, error) {
	if name == b.broken {
		return nil, errDiskRead
	}

	return b.MapFS.ReadFile(name)
}

func TestLoad_FiltersAndSorts(t *testing.T) {
	fsys := fstest.MapFS{
		"Docs/zeta.md":         {Data: []byte("# Zeta")},
		"Docs/alpha.md":        {Data: []byte("# Alpha")},
		"Docs/Upper.MD":        {Data: []byte("# Upper")},
		"Docs/notes.txt":       {Data: []byte("not markdown")},
		"Docs/.md":             {Data: []byte("no stem")},
		"Docs/nested/inner.md": {Data: []byte("# Inner")},
		"Docs/folder.md/x.md":  {Data: []byte("# Folder")},
	}

	docs, failures, err := Load(context.Background(), fsys, "Docs")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(failures) != 0 {
		t.Errorf("Expected no failures, got %v", failures)
	}

	want := []string{"Upper.MD", "alpha.md", "zeta.md"}
	if len(docs) != len(want) {
		t.Fatalf("Expected %d documents, got %d: %v", len(want), len(docs), docs)
	}

	for i, id := range want {
		if docs[i].ID != id {
			t.Errorf("docs[%d].ID = %q, want %q", i, docs[i].ID, id)
		}
	}

	if docs[1].Content != "# Alpha" {
		t.Errorf("Content = %q, want verbatim file text", docs[1].Content)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, _, err := Load(context.Background(), fstest.MapFS{}, "Docs")
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"Docs": {Mode: fs.ModeDir | 0755},
	}

	docs, failures, err := Load(context.Background(), fsys, "Docs")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if docs == nil || len(docs) != 0 || len(failures) != 0 {
		t.Errorf("Expected empty non-nil documents, got %v, %v", docs, failures)
	}
}

func TestLoad_UnreadableFileIsSkipped(t *testing.T) {
	fsys := brokenFS{
		MapFS: fstest.MapFS{
			"Docs/good.md": {Data: []byte("# Good")},
			"Docs/bad.md":  {Data: []byte("# Bad")},
		},
		broken: "Docs/bad.md",
	}

	docs, failures, err := NewLoader(fsys, nil).Load(context.Background(), "Docs")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(docs) != 1 || docs[0].ID != "good.md" {
		t.Errorf("Expected only good.md, got %v", docs)
	}

	if len(failures) != 1 || failures[0].ID != "bad.md" || !errors.Is(failures[0], errDiskRead) {
		t.Errorf("Expected failure for bad.md, got %v", failures)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	fsys := fstest.MapFS{
		"Docs/a.md": {Data: []byte("# A")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := Load(ctx, fsys, "Docs"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte("# Post\n"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, _, err := LoadDir(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if len(docs) != 1 || docs[0].ID != "post.md" {
		t.Errorf("Unexpected documents: %v", docs)
	}

	if _, _, err := LoadDir(context.Background(), filepath.Join(dir, "missing"), nil); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}

func TestIsMarkdown(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"post.md", true},
		{"POST.MD", true},
		{"post.markdown", false},
		{"post.md.bak", false},
		{".md", false},
		{"readme", false},
	}

	for _, tt := range tests {
		if got := IsMarkdown(tt.name); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

package localfs

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

func TestSaveAndFind(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	path, err := storage.Save(ctx, "doc-1.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected contents: %q", data)
	}

	found, err := storage.Find(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found != path {
		t.Fatalf("Find() = %q, want %q", found, path)
	}
}

func TestFindDoesNotMatchOtherIDs(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if _, err := storage.Save(ctx, "doc-10.png", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err = storage.Find(ctx, "doc-1")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	path, err := storage.Save(ctx, "doc-1.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := storage.Remove(ctx, path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still exists after Remove")
	}

	// Removing twice is fine.
	if err := storage.Remove(ctx, path); err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := storage.Save(context.Background(), "../escape.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("saved file escaped the base dir: %q", path)
	}
}

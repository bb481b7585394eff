package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/ecmastr.toml", `
[strings]
min_tree_length = 13
default_space = "old-shared"

[collation]
default_locale = "de-DE"
fast_path_locales = ["en", "de"]
disable_fast_path = false
`)

	loader := NewTOMLLoaderWithFS(memfs, "/ecmastr.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	strs, ok := config["strings"].(map[string]any)
	if !ok {
		t.Fatal("expected strings to be a map")
	}
	if strs["min_tree_length"] != int64(13) {
		t.Errorf("min_tree_length = %v (%T), want 13", strs["min_tree_length"], strs["min_tree_length"])
	}
	if strs["default_space"] != "old-shared" {
		t.Errorf("default_space = %v", strs["default_space"])
	}

	coll, ok := config["collation"].(map[string]any)
	if !ok {
		t.Fatal("expected collation to be a map")
	}
	locales, ok := coll["fast_path_locales"].([]any)
	if !ok || len(locales) != 2 || locales[1] != "de" {
		t.Errorf("fast_path_locales = %#v", coll["fast_path_locales"])
	}
	if coll["disable_fast_path"] != false {
		t.Errorf("disable_fast_path = %v", coll["disable_fast_path"])
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	loader := NewTOMLLoaderWithFS(memfs, "/nonexistent.toml")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", `
[strings
max_length = 4
`)

	loader := NewTOMLLoaderWithFS(memfs, "/invalid.toml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.toml" {
		t.Errorf("Path = %q, want '/invalid.toml'", parseErr.Path)
	}
	if parseErr.Line != 2 {
		t.Errorf("Line = %d, want 2", parseErr.Line)
	}
	if !strings.Contains(parseErr.Error(), "line 2") {
		t.Errorf("Error() = %q", parseErr.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	loader := &TOMLLoader{}

	config, err := loader.LoadFromReader(strings.NewReader(`
[heap]
page_size = 4096
`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	heap, ok := config["heap"].(map[string]any)
	if !ok || heap["page_size"] != int64(4096) {
		t.Errorf("heap = %#v", config["heap"])
	}
}

func TestTOMLLoader_Empty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.toml", "")
	config, err := NewTOMLLoaderWithFS(memfs, "/empty.toml").Load()
	if err != nil {
		t.Fatal(err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("config = %#v, want empty map", config)
	}
}

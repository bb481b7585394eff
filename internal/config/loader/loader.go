// Package loader reads configuration sources into generic maps.
//
// File loaders parse TOML or YAML into map[string]any; the environment
// loader maps prefixed variables onto the same shape. Maps from several
// sources are combined with DeepMerge before being decoded into typed
// configuration.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates a file extension with no loader.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrIncludeCycle indicates a file that includes itself, directly or
	// through other files.
	ErrIncludeCycle = errors.New("include cycle")
)

// Loader reads one configuration source. A missing source yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileLoader is a Loader that can also read an explicit path.
type FileLoader interface {
	Loader
	LoadFrom(path string) (map[string]any, error)
}

// FileSystem is the file access the loaders need.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS returns OSFS.
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath picks the loader for path by extension.
func ForPath(fsys FileSystem, path string) (FileLoader, error) {
	if fsys == nil {
		fsys = DefaultFS()
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

const includeKey = "@include"

// LoadWithIncludes loads path and resolves its "@include" directive, a
// path or list of paths relative to the including file. Included files may
// be in either format; the including file wins on conflicts. maxDepth
// bounds nesting.
func LoadWithIncludes(fsys FileSystem, path string, maxDepth int) (map[string]any, error) {
	return loadIncludes(fsys, filepath.Clean(path), maxDepth, nil)
}

func loadIncludes(fsys FileSystem, path string, depth int, chain []string) (map[string]any, error) {
	for _, p := range chain {
		if p == path {
			return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, strings.Join(append(chain, path), " -> "))
		}
	}
	if depth <= 0 {
		return nil, fmt.Errorf("includes nested too deeply at %s", path)
	}

	l, err := ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	m, err := l.LoadFrom(path)
	if err != nil || m == nil {
		return m, err
	}

	raw, ok := m[includeKey]
	if !ok {
		return m, nil
	}
	delete(m, includeKey)
	paths, err := includePaths(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	chain = append(chain, path)
	merged := map[string]any{}
	for _, inc := range paths {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := loadIncludes(fsys, filepath.Clean(inc), depth-1, chain)
		if err != nil {
			return nil, fmt.Errorf("include %s: %w", inc, err)
		}
		merged = DeepMerge(merged, sub)
	}
	return DeepMerge(merged, m), nil
}

func includePaths(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is %T, not a string", includeKey, i, item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s is %T, want a string or a list of strings", includeKey, v)
}

// ParseError is a syntax error in a configuration file. Line and Column are
// 1-based and zero when unknown.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// readFile returns nil, nil for a missing file.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// DeepMerge merges src over dst and returns dst, allocating it when nil.
// Nested maps merge key by key; any other src value replaces dst's.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		sm, srcMap := sv.(map[string]any)
		dm, dstMap := dst[k].(map[string]any)
		if srcMap && dstMap {
			dst[k] = DeepMerge(dm, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}

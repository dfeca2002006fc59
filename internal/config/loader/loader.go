// Package loader parses configuration documents into generic maps.
//
// The registry itself is JSON; documents imported with "config merge" or
// "config delete --file" may also be TOML or YAML, selected by extension.
// Environment overrides are read by EnvLoader.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by ForPath for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	Load() (map[string]any, error)
}

// Parser turns raw document bytes into a configuration map.
// The source names the document in error messages.
type Parser interface {
	Parse(source string, data []byte) (map[string]any, error)
}

// FileSystem is the read side of the file system used by loaders.
// vfs.VFS satisfies it.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// FileLoader reads a single document from a FileSystem.
type FileLoader struct {
	fs     FileSystem
	path   string
	parser Parser
}

// NewFileLoader creates a loader for path using the given parser.
func NewFileLoader(fsys FileSystem, path string, parser Parser) *FileLoader {
	return &FileLoader{fs: fsys, path: path, parser: parser}
}

// Path returns the document path.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads and parses the document. A missing file is reported with an
// error matching fs.ErrNotExist.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.parser.Parse(l.path, data)
}

// ParserFor returns the parser matching the extension of path.
// Unknown extensions are parsed as JSON.
func ParserFor(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return JSONParser{}, nil
	case ".toml":
		return TOMLParser{}, nil
	case ".yaml", ".yml":
		return YAMLParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ForPath creates a FileLoader choosing the parser by file extension.
func ForPath(fsys FileSystem, path string) (*FileLoader, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return nil, err
	}
	return NewFileLoader(fsys, path, parser), nil
}

// ParseError represents an error while parsing a configuration document.
type ParseError struct {
	// Path names the document (a file path or "input").
	Path string
	// Line is the 1-based line of the error (0 if unknown).
	Line int
	// Column is the 1-based column of the error (0 if unknown).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Detail())
}

// Detail describes the error without the document name.
func (e *ParseError) Detail() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// normalize converts decoder-specific containers into the map[string]any /
// []any shapes used throughout the configuration code.
func normalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		for key, child := range v {
			v[key] = normalize(child)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[fmt.Sprint(key)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range v {
			v[i] = normalize(child)
		}
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = normalize(child)
		}
		return out
	default:
		return val
	}
}

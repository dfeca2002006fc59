package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"

	"github.com/dshills/playground/internal/config/loader"
	"github.com/dshills/playground/internal/vfs"
)

//go:embed defaults.json
var defaultsJSON []byte

// AppName is the directory name used under the user configuration directory.
const AppName = "playground"

// DefaultFileName is the registry file name.
const DefaultFileName = "config.json"

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: true,
}

// Store loads and persists the registry document at a fixed path.
type Store struct {
	fs   vfs.VFS
	path string
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the file system used by the store.
func WithFS(fsys vfs.VFS) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// NewStore creates a store for the registry at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = vfs.NewOSFS()
	}
	return s
}

// DefaultPath returns the registry location under the user configuration
// directory ($XDG_CONFIG_HOME/playground/config.json on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}
	return filepath.Join(dir, AppName, DefaultFileName), nil
}

// Defaults returns a fresh copy of the built-in registry.
func Defaults() (Registry, error) {
	doc, err := loader.JSONParser{}.Parse("defaults.json", defaultsJSON)
	if err != nil {
		return nil, err
	}
	return Registry(doc), nil
}

// Path returns the registry path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the registry document exists.
func (s *Store) Exists() bool {
	return s.path != "" && s.fs.Exists(s.path)
}

// Load reads and parses the registry. A missing document is reported as
// ErrConfigNotFound; malformed JSON as a *FormatError naming the path.
func (s *Store) Load() (Registry, error) {
	if s.path == "" {
		return nil, ErrConfigNotFound
	}

	doc, err := loader.NewFileLoader(s.fs, s.path, loader.JSONParser{}).Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, s.path)
		}
		return nil, err
	}
	return Registry(doc), nil
}

// Save writes the registry with sorted keys and four-space indentation.
// The document is written to a sibling temporary file and renamed over the
// target so readers never observe a partial write.
func (s *Store) Save(reg Registry) error {
	if s.path == "" || !s.fs.IsDir(s.fs.Dir(s.path)) {
		return ErrConfigNotFound
	}

	data, err := Marshal(map[string]any(reg))
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.RemoveAll(tmp)
		return fmt.Errorf("replacing configuration: %w", err)
	}
	return nil
}

// Init writes the built-in registry to the store path, creating parent
// directories. An existing registry is only replaced when force is set.
func (s *Store) Init(force bool) error {
	if s.path == "" {
		return ErrConfigNotFound
	}
	if s.fs.Exists(s.path) && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, s.path)
	}

	reg, err := Defaults()
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.fs.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}
	return s.Save(reg)
}

// Update loads the registry, applies fn and saves the result.
// Nothing is written when fn fails.
func (s *Store) Update(fn func(Registry) error) error {
	reg, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	return s.Save(reg)
}

// ReadDocument loads an external JSON, TOML or YAML document, choosing the
// format by file extension.
func (s *Store) ReadDocument(path string) (map[string]any, error) {
	l, err := loader.ForPath(s.fs, path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

// DeleteFrom removes every type named at the top level of the document at
// path. Names absent from the registry are skipped. The removed names are
// returned.
func (s *Store) DeleteFrom(path string) ([]string, error) {
	doc, err := s.ReadDocument(path)
	if err != nil {
		return nil, err
	}

	var removed []string
	err = s.Update(func(reg Registry) error {
		removed = reg.DeleteTypes(Registry(doc).Types())
		return nil
	})
	return removed, err
}

// MergeFrom merges the types defined in the document at path into the
// registry, replacing definitions with the same name.
func (s *Store) MergeFrom(path string) ([]string, error) {
	doc, err := s.ReadDocument(path)
	if err != nil {
		return nil, err
	}

	var merged []string
	err = s.Update(func(reg Registry) error {
		names, mergeErr := reg.Merge(doc)
		merged = names
		return mergeErr
	})
	return merged, err
}

// Marshal encodes v as indented JSON with sorted keys and a trailing newline.
// HTML characters are not escaped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

// Package keypath addresses values inside nested configuration maps.
//
// A Path is an ordered list of map keys. The empty Path addresses the root
// map itself; a Path of length one addresses a top-level key. Navigation only
// descends through map[string]any nodes: sequences and scalars terminate a
// path.
package keypath

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by path operations.
var (
	// ErrKeyNotFound indicates a segment of the path could not be followed.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyPath indicates a mutating operation was given the root path.
	ErrEmptyPath = errors.New("empty key path")
)

// Separator joins path segments in their textual form.
const Separator = "."

// Path identifies a location in a nested map.
type Path []string

// Parse splits a dotted key such as "api.files" into a Path.
// The empty string parses to the root path.
func Parse(s string) Path {
	if s == "" {
		return Path{}
	}
	return strings.Split(s, Separator)
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// KeyError reports the path that failed to resolve.
type KeyError struct {
	// Path is the prefix of the requested path up to and including
	// the segment that could not be followed.
	Path Path
	Err  error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q: %v", e.Path.String(), e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyError) Unwrap() error {
	return e.Err
}

func notFound(p Path) error {
	return &KeyError{Path: append(Path(nil), p...), Err: ErrKeyNotFound}
}

// Get returns the value at path within root.
// The empty path returns root unchanged.
func Get(path Path, root map[string]any) (any, error) {
	if len(path) == 0 {
		return root, nil
	}

	parent, err := container(path, root)
	if err != nil {
		return nil, err
	}

	val, ok := parent[path[len(path)-1]]
	if !ok {
		return nil, notFound(path)
	}
	return val, nil
}

// Set assigns value at path, mutating root in place, and returns root.
// Every segment but the last must already exist; intermediate maps are
// never created.
func Set(path Path, value any, root map[string]any) (map[string]any, error) {
	if len(path) == 0 {
		return root, ErrEmptyPath
	}

	parent, err := container(path, root)
	if err != nil {
		return root, err
	}

	parent[path[len(path)-1]] = value
	return root, nil
}

// Delete removes the key at path, mutating root in place, and returns root.
func Delete(path Path, root map[string]any) (map[string]any, error) {
	if len(path) == 0 {
		return root, ErrEmptyPath
	}

	parent, err := container(path, root)
	if err != nil {
		return root, err
	}

	key := path[len(path)-1]
	if _, exists := parent[key]; !exists {
		return root, notFound(path)
	}
	delete(parent, key)
	return root, nil
}

// container walks every segment but the last and returns the map that holds
// the final segment. For a single-segment path this is root itself.
func container(path Path, root map[string]any) (map[string]any, error) {
	if root == nil {
		return nil, notFound(path[:1])
	}

	current := root
	for i := 0; i < len(path)-1; i++ {
		val, exists := current[path[i]]
		if !exists {
			return nil, notFound(path[:i+1])
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, notFound(path[:i+2])
		}
		current = next
	}

	return current, nil
}

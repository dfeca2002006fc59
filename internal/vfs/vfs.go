// Package vfs provides the file system abstraction used by the registry
// store and the playground materializer.
//
// The VFS interface allows swapping the OS file system for an in-memory one,
// so scaffolding and rollback can be exercised without touching disk.
package vfs

import "io/fs"

// VFS is a virtual file system abstraction.
type VFS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	// The parent directory must exist.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Mkdir creates a directory. The parent must exist.
	Mkdir(path string, perm fs.FileMode) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm fs.FileMode) error

	// RemoveAll removes a path and all its contents.
	// It succeeds if the path does not exist.
	RemoveAll(path string) error

	// Rename renames (moves) a file or directory.
	Rename(oldPath, newPath string) error

	// Abs returns the absolute path.
	Abs(path string) (string, error)

	// Join joins path elements.
	Join(elem ...string) string

	// Dir returns the directory portion of a path.
	Dir(path string) string

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool
}

// Package filesystem abstracts the handful of filesystem calls used while
// expanding report file patterns, so they can be faked in tests.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Getwd() (string, error)
	Abs(path string) (string, error)
}

// Platformer lets a fake report which operating system it simulates.
// Pattern matching is case-insensitive on Windows and case-sensitive
// everywhere else.
type Platformer interface {
	Platform() string
}

// DefaultFS implements Filesystem on the real host filesystem.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (DefaultFS) Getwd() (string, error) {
	return os.Getwd()
}

func (DefaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (DefaultFS) Platform() string {
	return runtime.GOOS
}

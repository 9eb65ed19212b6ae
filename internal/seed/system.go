package seed

import (
	"io"
	"os"
	"time"
)

// System abstracts the filesystem operations the seeding pass performs on
// the install directory. The interface is intentionally package-local so
// unit tests can inject failures without shared global state; the bundle
// side has its own collaborator interface in the bundle package.
type System interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	Remove(name string) error
	Rename(oldpath string, newpath string) error
	Create(name string) (io.WriteCloser, error)
	Chtimes(name string, atime time.Time, mtime time.Time) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes the named file.
func (RealSystem) Remove(name string) error {
	return os.Remove(name)
}

// Rename renames (moves) oldpath to newpath.
func (RealSystem) Rename(oldpath string, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Create creates or truncates the named file for writing.
func (RealSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// Chtimes changes the access and modification times of the named file.
func (RealSystem) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

package hostconfig

import (
	"os"

	"github.com/conn-castle/doc-layer/internal/fsutil"
)

// System abstracts system-level operations to enable dependency injection
// in driver logic.
type System interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (os.FileInfo, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error
}

// RealSystem implements System using actual system calls.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Rename renames oldpath to newpath.
func (RealSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

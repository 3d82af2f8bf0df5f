package spam

import (
	"os"
)

// FileSystem is the interface used to read keyword and domain lists and to write exports.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	MkDir(name string) error
}

// FileSystemImpl is the implementation for the FileSystem interface backed by the local disk.
type FileSystemImpl struct {
}

// ReadFile returns the content of the named file.
func (fs *FileSystemImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile replaces the content of the named file, creating it if needed.
func (fs *FileSystemImpl) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

// MkDir creates a directory named path, along with any necessary parents. It does nothing if the directory exists.
func (fs *FileSystemImpl) MkDir(name string) error {
	return os.MkdirAll(name, 0755)
}

package logging

import (
	"os"
)

// LogFile is an append-only results log destination.
type LogFile interface {
	Append(content []byte) (err error)
	Close() error
}

// LogFileSystem prepares the results log directory and opens results log files.
type LogFileSystem interface {
	MkDir(dirname string) error
	Open(name string) (f LogFile, err error)
}

// LogFileImpl is a LogFile backed by an os.File opened in append mode.
type LogFileImpl struct {
	f *os.File
}

// Append writes content after everything already in the file.
func (fs *LogFileImpl) Append(content []byte) (err error) {
	_, err = fs.f.Write(content)
	return
}

// Close releases the file handle.
func (fs *LogFileImpl) Close() error {
	return fs.f.Close()
}

// LogFileSystemImpl is the LogFileSystem used outside of tests.
type LogFileSystemImpl struct{}

// MkDir makes sure the results log directory and its parents exist.
func (fs *LogFileSystemImpl) MkDir(name string) error {
	return os.MkdirAll(name, 0755)
}

// Open returns the results log at name for appending. The file is created when missing.
func (fs *LogFileSystemImpl) Open(name string) (ff LogFile, err error) {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	ff = &LogFileImpl{f: f}
	return
}

package store

import (
	"io"
	"os"
	"path/filepath"
)

type filesystemManagement interface {
	openDataFile(path string) (io.ReadCloser, int64, error)
	createDataFile(path string) (io.WriteCloser, error)
}

type fileManagement struct{}

func (fs *fileManagement) openDataFile(path string) (io.ReadCloser, int64, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, err
	}
	return file, info.Size(), nil
}

// createDataFile truncates path, creating its directory if needed.
func (fs *fileManagement) createDataFile(path string) (io.WriteCloser, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
}

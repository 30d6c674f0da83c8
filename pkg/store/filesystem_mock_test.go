package store

import (
	"bytes"
	"io"

	"github.com/stretchr/testify/mock"
)

type fileManagementMock struct {
	mock.Mock
}

func (fm *fileManagementMock) openDataFile(path string) (io.ReadCloser, int64, error) {
	args := fm.Called(path)
	reader, _ := args.Get(0).(io.ReadCloser)
	return reader, args.Get(1).(int64), args.Error(2)
}

func (fm *fileManagementMock) createDataFile(path string) (io.WriteCloser, error) {
	args := fm.Called(path)
	writer, _ := args.Get(0).(io.WriteCloser)
	return writer, args.Error(1)
}

type bufferFile struct {
	bytes.Buffer
}

func (b *bufferFile) Close() error { return nil }

package migrations

import (
	"bytes"
	"io/fs"
	"time"
)

// memFile is an in-memory fs.File backed by a rendered migration.
type memFile struct {
	info   fs.FileInfo
	reader *bytes.Reader
}

func newMemFile(info fs.FileInfo, data []byte) *memFile {
	return &memFile{info: info, reader: bytes.NewReader(data)}
}

func (f *memFile) Stat() (fs.FileInfo, error) { return memFileInfo{f.info, f.reader.Size()}, nil }
func (f *memFile) Read(p []byte) (int, error) { return f.reader.Read(p) }
func (f *memFile) Close() error               { return nil }

// memFileInfo overrides the size of the underlying embedded file, since
// token substitution changes the byte count.
type memFileInfo struct {
	fs.FileInfo
	size int64
}

func (i memFileInfo) Size() int64        { return i.size }
func (i memFileInfo) ModTime() time.Time { return i.FileInfo.ModTime() }

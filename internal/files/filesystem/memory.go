package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // cleaned, slash-separated path -> file
}

// NewMemoryFileSystem creates a new, empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string]*memoryFile),
	}
}

// AddFile adds or replaces a file.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds or replaces a file with a specific modification time.
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	key := normalize(filePath)
	data := []byte(content)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[key] = &memoryFile{
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(key),
			size:    int64(len(data)),
			modTime: modTime,
		},
	}
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	file, err := mfs.lookup("open", filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(file.content)), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	file, err := mfs.lookup("stat", filePath)
	if err != nil {
		return nil, err
	}
	return file.info, nil
}

func (mfs *MemoryFileSystem) lookup(op, filePath string) (*memoryFile, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	file, ok := mfs.files[normalize(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: filePath, Err: fs.ErrNotExist}
	}
	return file, nil
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
var _ FileSystemProvider = (*OSFileSystem)(nil)


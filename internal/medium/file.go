// internal/medium/file.go
package medium

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// File persists the image in a regular file, byte for byte.
// A missing or short file reads as erased EEPROM. Writes past the end
// fill the gap with 0xFF.
type File struct {
	path string
}

// NewFile returns a medium backed by path. The file is created on first write.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("medium: file path required")
	}
	return &File{path: path}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) ReadImage(size int) ([]byte, error) {
	out := make([]byte, size)
	for i := range out {
		out[i] = 0xFF
	}

	fh, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("medium: open %s: %w", f.path, err)
	}
	defer fh.Close()

	n, err := io.ReadFull(fh, out)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("medium: read %s: %w", f.path, err)
	}
	for i := n; i < size; i++ {
		out[i] = 0xFF
	}
	return out, nil
}

func (f *File) WriteAt(off int, data []byte) error {
	if off < 0 {
		return fmt.Errorf("medium: negative offset %d", off)
	}

	fh, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("medium: open %s: %w", f.path, err)
	}
	defer fh.Close()

	// a gap past the end reads as erased, not zero
	st, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("medium: stat %s: %w", f.path, err)
	}
	if gap := int64(off) - st.Size(); gap > 0 {
		if _, err := fh.WriteAt(bytes.Repeat([]byte{0xFF}, int(gap)), st.Size()); err != nil {
			return fmt.Errorf("medium: fill %s: %w", f.path, err)
		}
	}

	if _, err := fh.WriteAt(data, int64(off)); err != nil {
		return fmt.Errorf("medium: write %s: %w", f.path, err)
	}
	if err := fh.Sync(); err != nil {
		return fmt.Errorf("medium: sync %s: %w", f.path, err)
	}
	return nil
}

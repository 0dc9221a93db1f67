// internal/medium/memory.go
package medium

import (
	"fmt"
	"sync"
)

// Memory is an in-process image medium.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns a medium of size bytes, erased to 0xFF.
func NewMemory(size int) *Memory {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xFF
	}
	return &Memory{data: data}
}

func (m *Memory) ReadImage(size int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]byte, size)
	for i := range out {
		out[i] = 0xFF
	}
	copy(out, m.data)
	return out, nil
}

func (m *Memory) WriteAt(off int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off < 0 || off+len(data) > len(m.data) {
		return fmt.Errorf("medium: write %d-%d outside %d bytes", off, off+len(data)-1, len(m.data))
	}
	copy(m.data[off:], data)
	return nil
}

// Bytes returns a copy of the medium contents.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

package integrity

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFFFFFF, // initial value, never complemented
		},
		{
			name:     "single zero byte",
			data:     []byte{0x00},
			expected: 0xD202EF8D,
		},
		{
			name:     "signature bytes",
			data:     []byte{0x55, 0xAA},
			expected: 0x9DEBE16A,
		},
		{
			name:     "check string",
			data:     []byte("123456789"),
			expected: 0x098494F3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Checksum(tt.data)
			if got != tt.expected {
				t.Errorf("Checksum() = 0x%08X, want 0x%08X", got, tt.expected)
			}
		})
	}
}

// The per-byte complement makes the codec diverge from canonical CRC-32 as
// soon as more than one byte is folded in. This is the persisted format.
func TestChecksum_DivergesFromStandardCRC32(t *testing.T) {
	one := []byte{'a'}
	if Checksum(one) != Standard(one) {
		t.Fatalf("single byte: got 0x%08X, standard 0x%08X", Checksum(one), Standard(one))
	}

	many := []byte("123456789")
	if Standard(many) != 0xCBF43926 {
		t.Fatalf("standard check value = 0x%08X", Standard(many))
	}
	if Checksum(many) == Standard(many) {
		t.Fatalf("multi byte checksum unexpectedly matches canonical CRC-32")
	}
}

func TestChecksum_SingleBitFlipDetected(t *testing.T) {
	data := []byte{0x55, 0xAA, 0x02, 0x00, 0x19, 0x00, 0x00, 0xC2, 0x01, 0x00}
	base := Checksum(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			mut := append([]byte(nil), data...)
			mut[i] ^= 1 << bit
			if Checksum(mut) == base {
				t.Fatalf("flip byte=%d bit=%d not detected", i, bit)
			}
		}
	}
}

func BenchmarkChecksum(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(data)
	}
}

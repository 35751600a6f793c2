package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrShortFrame is returned when a buffer does not hold a whole frame.
var ErrShortFrame = errors.New("protocol: short frame")

// Encode serialises the table into a fresh 480-byte big-endian frame.
func (t *Table) Encode() []byte {
	buf := make([]byte, TableBytes)
	for i, cell := range t.cells {
		binary.BigEndian.PutUint32(buf[i*4:], cell)
	}
	return buf
}

// DecodeTable parses a 480-byte big-endian frame into a table.
func DecodeTable(data []byte) (*Table, error) {
	if len(data) != TableBytes {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(data), TableBytes)
	}
	var t Table
	for i := range t.cells {
		t.cells[i] = binary.BigEndian.Uint32(data[i*4:])
	}
	return &t, nil
}

// EncodeUint32 serialises a response integer. Negative values clamp to zero.
func EncodeUint32(v int) []byte {
	if v < 0 {
		v = 0
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}

// DecodeUint32 parses a 4-byte big-endian integer.
func DecodeUint32(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("%w: got %d bytes, want 4", ErrShortFrame, len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}

// WriteTable writes one full table frame.
func WriteTable(w io.Writer, t *Table) error {
	if _, err := w.Write(t.Encode()); err != nil {
		return fmt.Errorf("write table frame: %w", err)
	}
	return nil
}

// ReadTable reads exactly one table frame. Partial reads loop until the
// frame is complete; a closed connection surfaces as an error.
func ReadTable(r io.Reader) (*Table, error) {
	buf := make([]byte, TableBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read table frame: %w", err)
	}
	return DecodeTable(buf)
}

// WriteUint32 writes one response integer frame.
func WriteUint32(w io.Writer, v int) error {
	if _, err := w.Write(EncodeUint32(v)); err != nil {
		return fmt.Errorf("write u32 frame: %w", err)
	}
	return nil
}

// ReadUint32 reads exactly one response integer frame.
func ReadUint32(r io.Reader) (uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, fmt.Errorf("read u32 frame: %w", err)
	}
	return binary.BigEndian.Uint32(buf), nil
}

// Package cursor provides a bounds-checked little-endian byte cursor for
// decoding legacy binary streams. Every read reports an error instead of
// panicking or silently overreading when the buffer is exhausted.
package cursor

import (
	"encoding/binary"
	"errors"
)

// ErrShortRead is returned when a read would run past the end of the buffer.
var ErrShortRead = errors.New("cursor: read past end of buffer")

// Cursor tracks a position within a byte buffer.
type Cursor struct {
	data []byte
	off  int
}

// New creates a cursor at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current position.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.data) {
		return ErrShortRead
	}
	c.off = off
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.off+n > len(c.data) {
		return ErrShortRead
	}
	c.off += n
	return nil
}

// Bytes reads the next n bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.data) {
		return nil, ErrShortRead
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Uint16 reads a little-endian 16-bit unsigned integer.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian 32-bit unsigned integer.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian 64-bit unsigned integer.
func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int16 reads a little-endian 16-bit signed integer.
func (c *Cursor) Int16() (int16, error) {
	v, err := c.Uint16()
	return int16(v), err
}

// Int32 reads a little-endian 32-bit signed integer.
func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

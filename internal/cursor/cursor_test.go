package cursor

import (
	"errors"
	"testing"
)

func TestCursorReads(t *testing.T) {
	c := New([]byte{
		0x01, 0x02, // uint16 0x0201
		0x03, 0x04, 0x05, 0x06, // uint32 0x06050403
		0xFF, 0xFF, // int16 -1
		0xAA, 0xBB,
	})

	v16, err := c.Uint16()
	if err != nil || v16 != 0x0201 {
		t.Fatalf("Uint16() = %#x, %v", v16, err)
	}
	v32, err := c.Uint32()
	if err != nil || v32 != 0x06050403 {
		t.Fatalf("Uint32() = %#x, %v", v32, err)
	}
	i16, err := c.Int16()
	if err != nil || i16 != -1 {
		t.Fatalf("Int16() = %d, %v", i16, err)
	}
	if c.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2", c.Remaining())
	}
	raw, err := c.Bytes(2)
	if err != nil || raw[0] != 0xAA || raw[1] != 0xBB {
		t.Fatalf("Bytes(2) = %x, %v", raw, err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", c.Remaining())
	}
}

func TestCursorShortRead(t *testing.T) {
	c := New([]byte{0x01})
	if _, err := c.Uint16(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Uint16() error = %v, want ErrShortRead", err)
	}
	// A failed read must not move the cursor.
	if c.Offset() != 0 {
		t.Fatalf("Offset() = %d after failed read, want 0", c.Offset())
	}
}

func TestCursorSeekSkip(t *testing.T) {
	c := New(make([]byte, 10))
	if err := c.Seek(4); err != nil {
		t.Fatalf("Seek(4) error = %v", err)
	}
	if err := c.Skip(6); err != nil {
		t.Fatalf("Skip(6) error = %v", err)
	}
	if err := c.Skip(1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Skip past end error = %v, want ErrShortRead", err)
	}
	if err := c.Seek(11); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Seek past end error = %v, want ErrShortRead", err)
	}
	if err := c.Seek(-1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Seek(-1) error = %v, want ErrShortRead", err)
	}
}

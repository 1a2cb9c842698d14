package legacy

// Test fixture builders. buildOLE2 writes a minimal valid CFB v3
// container: sector 0 holds the FAT, sector 1 the directory, sector 2
// an empty mini-FAT, and stream data follows. Streams are padded to the
// mini-stream cutoff so they chain through the regular FAT.

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"
)

const (
	sectorSize = 512
	freeSect   = 0xFFFFFFFF
	endOfChain = 0xFFFFFFFE
	fatSect    = 0xFFFFFFFD
	noStream   = 0xFFFFFFFF
)

type stream struct {
	name string
	data []byte
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// dirEntry builds a 128-byte compound-file directory entry.
func dirEntry(name string, objType byte, start, size, child, right uint32) []byte {
	e := make([]byte, 0, 128)

	encoded := utf16.Encode([]rune(name))
	nameField := make([]byte, 64)
	for i, r := range encoded {
		binary.LittleEndian.PutUint16(nameField[i*2:], r)
	}
	e = append(e, nameField...)
	e = append(e, u16(uint16(len(encoded)*2+2))...) // name length incl terminator
	e = append(e, objType, 1)                       // type, color
	e = append(e, u32(noStream)...)                 // left sibling
	e = append(e, u32(right)...)                    // right sibling
	e = append(e, u32(child)...)                    // child
	e = append(e, make([]byte, 16)...)              // CLSID
	e = append(e, u32(0)...)                        // state bits
	e = append(e, u64(0)...)                        // created
	e = append(e, u64(0)...)                        // modified
	e = append(e, u32(start)...)                    // start sector
	e = append(e, u32(size)...)                     // size low
	e = append(e, u32(0)...)                        // size high
	return e
}

// buildOLE2 writes a compound file holding the given streams (max 3)
// and returns its path.
func buildOLE2(t *testing.T, ext string, streams []stream) string {
	t.Helper()
	if len(streams) > 3 {
		t.Fatalf("fixture supports at most 3 streams, got %d", len(streams))
	}

	// Pad stream data past the mini-stream cutoff.
	for i := range streams {
		if len(streams[i].data) < 4096 {
			padded := make([]byte, 4096)
			copy(padded, streams[i].data)
			streams[i].data = padded
		}
	}

	const dataStart = 3
	sectorStarts := make([]uint32, len(streams))
	cur := uint32(dataStart)
	for i, s := range streams {
		sectorStarts[i] = cur
		cur += uint32((len(s.data) + sectorSize - 1) / sectorSize)
	}

	fat := make([]uint32, 128)
	for i := range fat {
		fat[i] = freeSect
	}
	fat[0] = fatSect
	fat[1] = endOfChain // directory
	fat[2] = endOfChain // mini-FAT
	for i, s := range streams {
		n := (len(s.data) + sectorSize - 1) / sectorSize
		start := sectorStarts[i]
		for j := 0; j < n; j++ {
			if j < n-1 {
				fat[start+uint32(j)] = start + uint32(j) + 1
			} else {
				fat[start+uint32(j)] = endOfChain
			}
		}
	}

	fatSector := make([]byte, 0, sectorSize)
	for _, v := range fat {
		fatSector = append(fatSector, u32(v)...)
	}

	miniFATSector := make([]byte, 0, sectorSize)
	for i := 0; i < 128; i++ {
		miniFATSector = append(miniFATSector, u32(freeSect)...)
	}

	var child uint32 = noStream
	if len(streams) > 0 {
		child = 1
	}
	dir := dirEntry("Root Entry", 5, endOfChain, 0, child, noStream)
	for i, s := range streams {
		right := uint32(noStream)
		if i+1 < len(streams) {
			right = uint32(i + 2)
		}
		dir = append(dir, dirEntry(s.name, 2, sectorStarts[i], uint32(len(s.data)), noStream, right)...)
	}
	for len(dir) < sectorSize {
		dir = append(dir, make([]byte, 128)...)
	}

	hdr := make([]byte, 0, sectorSize)
	hdr = append(hdr, 0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1)
	hdr = append(hdr, make([]byte, 16)...) // CLSID
	hdr = append(hdr, u16(0x003E)...)      // minor version
	hdr = append(hdr, u16(0x0003)...)      // major version
	hdr = append(hdr, u16(0xFFFE)...)      // byte order
	hdr = append(hdr, u16(0x0009)...)      // sector shift
	hdr = append(hdr, u16(0x0006)...)      // mini sector shift
	hdr = append(hdr, make([]byte, 6)...)  // reserved
	hdr = append(hdr, u32(0)...)           // directory sector count
	hdr = append(hdr, u32(1)...)           // FAT sector count
	hdr = append(hdr, u32(1)...)           // first directory sector
	hdr = append(hdr, u32(0)...)           // transaction signature
	hdr = append(hdr, u32(0x1000)...)      // mini-stream cutoff
	hdr = append(hdr, u32(2)...)           // first mini-FAT sector
	hdr = append(hdr, u32(1)...)           // mini-FAT sector count
	hdr = append(hdr, u32(endOfChain)...)  // first DIFAT sector
	hdr = append(hdr, u32(0)...)           // DIFAT sector count
	hdr = append(hdr, u32(0)...)           // DIFAT[0] = FAT sector 0
	for i := 0; i < 108; i++ {
		hdr = append(hdr, u32(freeSect)...)
	}

	out := append([]byte{}, hdr...)
	out = append(out, fatSector...)
	out = append(out, dir...)
	out = append(out, miniFATSector...)
	for _, s := range streams {
		out = append(out, s.data...)
		if rem := len(s.data) % sectorSize; rem != 0 {
			out = append(out, make([]byte, sectorSize-rem)...)
		}
	}

	path := filepath.Join(t.TempDir(), "fixture"+ext)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// Property-set stream builders.

type prop struct {
	id  uint32
	val []byte
}

func propI4(id uint32, v int32) prop {
	return prop{id: id, val: append(u16(0x0003), u32(uint32(v))...)}
}

func propStr(id uint32, s string) prop {
	data := append([]byte(s), 0)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	val := append(u16(0x001E), u32(uint32(len(data)))...)
	return prop{id: id, val: append(val, data...)}
}

func propFiletime(id uint32, ts time.Time) prop {
	const epochDelta = 11644473600
	ticks := uint64(ts.Unix()+epochDelta)*10000000 + uint64(ts.Nanosecond()/100)
	return prop{id: id, val: append(u16(0x0040), u64(ticks)...)}
}

// summaryFMTID is FMTID_SummaryInformation, serialized.
var summaryFMTID = []byte{
	0xE0, 0x85, 0x9F, 0xF2,
	0xF9, 0x4F,
	0x68, 0x10,
	0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9,
}

// buildPropertyStream serializes a single-section property-set stream
// with the section starting at offset 48.
func buildPropertyStream(props []prop) []byte {
	const sectionOffset = 48

	headerSize := 8 + 8*len(props)
	offsets := make([]uint32, len(props))
	off := headerSize
	for i, p := range props {
		offsets[i] = uint32(off)
		off += len(p.val)
		off = (off + 3) &^ 3
	}

	section := append(u32(uint32(off)), u32(uint32(len(props)))...)
	for i, p := range props {
		section = append(section, u32(p.id)...)
		section = append(section, u32(offsets[i])...)
	}
	for i, p := range props {
		section = append(section, p.val...)
		if i < len(props)-1 {
			for pad := (4 - len(p.val)%4) % 4; pad > 0; pad-- {
				section = append(section, 0)
			}
		}
	}

	hdr := append(u16(0xFFFE), u16(0)...) // byte order, version
	hdr = append(hdr, u32(0x00020006)...) // system identifier
	hdr = append(hdr, make([]byte, 16)...)
	hdr = append(hdr, u32(1)...) // property set count
	hdr = append(hdr, summaryFMTID...)
	hdr = append(hdr, u32(sectionOffset)...)
	return append(hdr, section...)
}

// Package oleps implements the read path of MS-OLEPS property-set
// streams, the metadata blobs stored in the SummaryInformation and
// DocumentSummaryInformation streams of OLE2 office files.
//
// Only the scalar types that office metadata actually uses are decoded:
// VT_I2, VT_I4, VT_LPSTR, and VT_FILETIME.
package oleps

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/folio/internal/cursor"
)

// ErrInvalidStream indicates the property-set header or section layout
// failed to parse.
var ErrInvalidStream = errors.New("oleps: invalid property-set stream")

// Property identifiers used by the office summary streams.
const (
	PIDTitle     = 0x02 // VT_LPSTR
	PIDAuthor    = 0x04 // VT_LPSTR
	PIDCreated   = 0x0C // VT_FILETIME
	PIDModified  = 0x0D // VT_FILETIME
	PIDPageCount = 0x0E // VT_I4
	PIDDocWidth  = 0x13 // VT_I4, twips
	PIDDocHeight = 0x14 // VT_I4, twips
)

// Variant type codes.
const (
	vtI2       = 2
	vtI4       = 3
	vtLPSTR    = 30
	vtFiletime = 64
)

// sectionOffsetPos is the fixed position of the first section offset:
// a 28-byte header followed by one 20-byte format-ID list entry, of
// which the final 4 bytes are the offset itself.
const sectionOffsetPos = 44

// Seconds between the FILETIME epoch (1601-01-01) and the Unix epoch.
const epochDeltaSeconds = 11644473600

// PropertySet is a decoded view over one property-set section.
type PropertySet struct {
	section []byte
	entries []entry
}

type entry struct {
	id     uint32
	offset uint32
}

// Parse decodes the section directory of a property-set stream.
func Parse(stream []byte) (*PropertySet, error) {
	c := cursor.New(stream)
	if err := c.Seek(sectionOffsetPos); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidStream)
	}
	sectionOffset, err := c.Uint32()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidStream)
	}
	if err := c.Seek(int(sectionOffset)); err != nil {
		return nil, fmt.Errorf("%w: section offset out of range", ErrInvalidStream)
	}
	if _, err := c.Uint32(); err != nil { // section size, unused
		return nil, fmt.Errorf("%w: truncated section", ErrInvalidStream)
	}
	count, err := c.Uint32()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated section", ErrInvalidStream)
	}
	if count > uint32(c.Remaining())/8 {
		return nil, fmt.Errorf("%w: impossible property count %d", ErrInvalidStream, count)
	}

	ps := &PropertySet{
		section: stream[sectionOffset:],
		entries: make([]entry, 0, count),
	}
	for i := uint32(0); i < count; i++ {
		id, err := c.Uint32()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated entry list", ErrInvalidStream)
		}
		off, err := c.Uint32()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated entry list", ErrInvalidStream)
		}
		ps.entries = append(ps.entries, entry{id: id, offset: off})
	}
	return ps, nil
}

// value positions a cursor at the typed value for id, returning the type
// code. The cursor is left just past the 2-byte type field.
func (ps *PropertySet) value(id uint32) (uint16, *cursor.Cursor, bool) {
	for _, e := range ps.entries {
		if e.id != id {
			continue
		}
		c := cursor.New(ps.section)
		if err := c.Seek(int(e.offset)); err != nil {
			return 0, nil, false
		}
		code, err := c.Uint16()
		if err != nil {
			return 0, nil, false
		}
		return code, c, true
	}
	return 0, nil, false
}

// Int resolves a VT_I2 or VT_I4 property.
func (ps *PropertySet) Int(id uint32) (int32, bool) {
	code, c, ok := ps.value(id)
	if !ok {
		return 0, false
	}
	switch code {
	case vtI2:
		v, err := c.Int16()
		if err != nil {
			return 0, false
		}
		return int32(v), true
	case vtI4:
		v, err := c.Int32()
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// String resolves a VT_LPSTR property. The raw bytes are decoded as
// Windows-1252, falling back to UTF-8, and truncated at the first NUL.
func (ps *PropertySet) String(id uint32) (string, bool) {
	code, c, ok := ps.value(id)
	if !ok || code != vtLPSTR {
		return "", false
	}
	n, err := c.Uint32()
	if err != nil || n > uint32(c.Remaining()) {
		return "", false
	}
	raw, err := c.Bytes(int(n))
	if err != nil {
		return "", false
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw), true
	}
	return string(decoded), true
}

// Time resolves a VT_FILETIME property. A zero tick count means the
// field was never set and resolves to absent, not the 1601 epoch.
func (ps *PropertySet) Time(id uint32) (time.Time, bool) {
	code, c, ok := ps.value(id)
	if !ok || code != vtFiletime {
		return time.Time{}, false
	}
	ticks, err := c.Uint64()
	if err != nil || ticks == 0 {
		return time.Time{}, false
	}
	secs := int64(ticks/10000000) - epochDeltaSeconds
	nanos := int64(ticks%10000000) * 100
	return time.Unix(secs, nanos).UTC(), true
}

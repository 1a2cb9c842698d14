package legacy

import (
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/cfb"
	"github.com/tsawler/folio/internal/cursor"
	"github.com/tsawler/folio/model"
)

// PowerPoint binary record types.
const (
	recSlideContainer = 0x03E8
	recDocumentAtom   = 0x03E9
)

// containerVersion marks a record whose body holds nested records.
const containerVersion = 0x0F

// masterUnitsPerPoint converts PowerPoint master coordinates to points.
const masterUnitsPerPoint = 8

// SlideReader provides access to legacy PPT presentations.
type SlideReader struct {
	path string
}

// OpenSlide validates the file at path as an OLE2 container.
func OpenSlide(path string) (*SlideReader, error) {
	if err := validateContainer(path); err != nil {
		return nil, err
	}
	return &SlideReader{path: path}, nil
}

// Format returns the format this reader parses.
func (r *SlideReader) Format() format.Format {
	return format.PPT
}

// PageCount counts slide containers in the presentation stream. A deck
// without any still counts one page.
func (r *SlideReader) PageCount() (int, error) {
	stream, err := cfb.ReadStream(r.path, cfb.PowerPointDocument)
	if err != nil {
		return 0, err
	}

	count := 0
	scanRecords(stream, func(recType uint16, body *cursor.Cursor) {
		if recType == recSlideContainer {
			count++
		}
	})
	if count < 1 {
		return 1, nil
	}
	return count, nil
}

// PageSize returns the slide geometry from the document atom, which
// stores it in master units. Decks without one are 16:9 widescreen.
func (r *SlideReader) PageSize(page int) (model.PageGeometry, error) {
	stream, err := cfb.ReadStream(r.path, cfb.PowerPointDocument)
	if err != nil {
		return model.SlideDefault, nil
	}

	size := model.SlideDefault
	scanRecords(stream, func(recType uint16, body *cursor.Cursor) {
		if recType != recDocumentAtom || size != model.SlideDefault {
			return
		}
		cx, err := body.Uint32()
		if err != nil {
			return
		}
		cy, err := body.Uint32()
		if err != nil {
			return
		}
		if cx > 0 && cy > 0 {
			size = model.PageGeometry{
				Width:  float64(cx) / masterUnitsPerPoint,
				Height: float64(cy) / masterUnitsPerPoint,
			}
		}
	})
	return size, nil
}

// Metadata returns the presentation summary information.
func (r *SlideReader) Metadata() (model.Metadata, error) {
	return summaryMetadata(r.path), nil
}

// scanRecords walks the 8-byte-header record stream, descending into
// container records so nested slide containers are still seen. A record
// length running past the stream terminates the scan.
func scanRecords(stream []byte, visit func(recType uint16, body *cursor.Cursor)) {
	c := cursor.New(stream)
	for c.Remaining() >= 8 {
		verInstance, err := c.Uint16()
		if err != nil {
			return
		}
		recType, err := c.Uint16()
		if err != nil {
			return
		}
		recLen, err := c.Uint32()
		if err != nil {
			return
		}
		if int(recLen) > c.Remaining() {
			return
		}

		visit(recType, cursor.New(stream[c.Offset():c.Offset()+int(recLen)]))

		// Slide containers count as one unit; other containers are
		// descended into rather than skipped.
		if verInstance&0x0F == containerVersion && recType != recSlideContainer {
			continue
		}
		if c.Skip(int(recLen)) != nil {
			return
		}
	}
}

package legacy

import (
	"errors"

	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/cfb"
	"github.com/tsawler/folio/internal/cursor"
	"github.com/tsawler/folio/model"
)

// biffBoundSheet is the BIFF8 record announcing one worksheet.
const biffBoundSheet = 0x0085

// SheetReader provides access to legacy XLS workbooks.
type SheetReader struct {
	path string
}

// OpenSheet validates the file at path as an OLE2 container.
func OpenSheet(path string) (*SheetReader, error) {
	if err := validateContainer(path); err != nil {
		return nil, err
	}
	return &SheetReader{path: path}, nil
}

// Format returns the format this reader parses.
func (r *SheetReader) Format() format.Format {
	return format.XLS
}

// PageCount counts the worksheets declared in the workbook stream. A
// workbook declaring none still counts one page.
func (r *SheetReader) PageCount() (int, error) {
	stream, err := r.workbookStream()
	if err != nil {
		return 0, err
	}

	count := 0
	c := cursor.New(stream)
	for c.Remaining() >= 4 {
		recType, err := c.Uint16()
		if err != nil {
			break
		}
		recLen, err := c.Uint16()
		if err != nil {
			break
		}
		if recType == biffBoundSheet {
			count++
		}
		// A record running past the stream means trailing padding or
		// truncation; either way the scan is over.
		if c.Skip(int(recLen)) != nil {
			break
		}
	}
	if count < 1 {
		return 1, nil
	}
	return count, nil
}

// PageSize returns the print geometry of legacy worksheets, which is
// always Letter; BIFF print setup carries no reliable paper size for
// the files this reader targets.
func (r *SheetReader) PageSize(page int) (model.PageGeometry, error) {
	return model.Letter, nil
}

// Metadata returns the workbook summary information.
func (r *SheetReader) Metadata() (model.Metadata, error) {
	return summaryMetadata(r.path), nil
}

// workbookStream reads the BIFF8 "Workbook" stream, falling back to the
// BIFF5 "Book" name.
func (r *SheetReader) workbookStream() ([]byte, error) {
	stream, err := cfb.ReadStream(r.path, cfb.WorkbookStream)
	if err == nil {
		return stream, nil
	}
	if !errors.Is(err, cfb.ErrStreamNotFound) {
		return nil, err
	}
	return cfb.ReadStream(r.path, cfb.BookStream)
}

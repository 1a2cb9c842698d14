package folio

import (
	"context"
	"fmt"
	"sync"

	"github.com/tsawler/folio/export"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/model"
)

// parser is the per-format reading surface. All readers implement it;
// the modern ones additionally implement export.ContentSource and
// texter.
type parser interface {
	Format() format.Format
	PageCount() (int, error)
	PageSize(page int) (model.PageGeometry, error)
	Metadata() (model.Metadata, error)
}

// texter is implemented by parsers that can extract plain text.
type texter interface {
	Text() (string, error)
}

// Document is an opened office document. It holds no open file handle,
// so a Document never needs closing, and it is safe for concurrent use.
type Document struct {
	path   string
	format format.Format
	parser parser

	mu        sync.Mutex
	pageCount int
	haveCount bool
	geometry  map[int]model.PageGeometry
	meta      model.Metadata
	haveMeta  bool
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Format returns the detected document format.
func (d *Document) Format() format.Format {
	return d.format
}

// PageCount returns the number of pages, worksheets, or slides. The
// count is computed once and cached.
func (d *Document) PageCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.haveCount {
		return d.pageCount, nil
	}
	count, err := d.parser.PageCount()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedFile, err)
	}
	d.pageCount = count
	d.haveCount = true
	return count, nil
}

// PageSize returns the geometry of the given 0-indexed page in points.
// A page whose geometry cannot be determined gets the format family's
// default size rather than an error; geometry is a best-effort
// enrichment.
func (d *Document) PageSize(page int) model.PageGeometry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if g, ok := d.geometry[page]; ok {
		return g
	}
	g, err := d.parser.PageSize(page)
	if err != nil || g.IsZero() {
		g = defaultGeometry(d.format)
	}
	if d.geometry == nil {
		d.geometry = make(map[int]model.PageGeometry)
	}
	d.geometry[page] = g
	return g
}

// Metadata returns the document's summary information. Fields the
// document does not carry stay zero; metadata never fails a readable
// document.
func (d *Document) Metadata() model.Metadata {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.haveMeta {
		return d.meta
	}
	meta, err := d.parser.Metadata()
	if err != nil {
		meta = model.Metadata{}
	}
	d.meta = meta
	d.haveMeta = true
	return meta
}

// Text returns the document's plain text. Formats without text
// extraction return the empty string.
func (d *Document) Text() (string, error) {
	t, ok := d.parser.(texter)
	if !ok {
		return "", nil
	}
	text, err := t.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptedFile, err)
	}
	return text, nil
}

// ExportPDF renders the whole document to PDF.
func (d *Document) ExportPDF(ctx context.Context) ([]byte, error) {
	count, err := d.PageCount()
	if err != nil {
		return nil, err
	}
	return export.PDF(ctx, d.parser, 0, count-1)
}

// ExportPDFPages renders the inclusive 0-indexed page range
// [first, last] to PDF.
func (d *Document) ExportPDFPages(ctx context.Context, first, last int) ([]byte, error) {
	return export.PDF(ctx, d.parser, first, last)
}

func defaultGeometry(f format.Format) model.PageGeometry {
	switch f.Family() {
	case format.FamilySlide:
		return model.SlideDefault
	case format.FamilySheet:
		return model.A4
	default:
		return model.Letter
	}
}

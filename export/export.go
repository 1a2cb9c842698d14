// Package export renders parsed documents to PDF. Modern formats are
// drawn from their parsed page contents; formats whose content cannot
// be reconstructed get labelled placeholder pages at the document's
// true page geometry.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/model"
)

var (
	// ErrPageOutOfRange indicates a requested page range falls outside
	// the document.
	ErrPageOutOfRange = errors.New("export: page range out of bounds")
	// ErrCancelled indicates the context was cancelled mid-export.
	ErrCancelled = errors.New("export: cancelled")
	// ErrInternal indicates a rendering failure that is not attributable
	// to the input document.
	ErrInternal = errors.New("export: internal error")
)

// mmPerPoint converts PDF points to the millimetre canvas unit.
const mmPerPoint = 25.4 / 72

// drawMu serializes all canvas drawing; the shared font family's
// shaping caches are not safe for concurrent use.
var drawMu sync.Mutex

// Source is a parsed document that can be exported.
type Source interface {
	Format() format.Format
	PageCount() (int, error)
	PageSize(page int) (model.PageGeometry, error)
}

// ContentSource is implemented by sources that can reconstruct page
// contents. Sources without it are rendered as placeholders.
type ContentSource interface {
	BuildPageContents() ([]model.Page, error)
}

// PDF renders the inclusive 0-indexed page range [first, last] to a PDF
// document. Cancellation is observed between pages; a cancelled export
// returns ErrCancelled and no partial output.
func PDF(ctx context.Context, src Source, first, last int) ([]byte, error) {
	count, err := src.PageCount()
	if err != nil {
		return nil, err
	}
	if first < 0 || last >= count || first > last {
		return nil, fmt.Errorf("%w: pages %d-%d of %d", ErrPageOutOfRange, first+1, last+1, count)
	}

	var contents []model.Page
	if cs, ok := src.(ContentSource); ok {
		contents, err = cs.BuildPageContents()
		if err != nil {
			return nil, err
		}
	}

	drawMu.Lock()
	defer drawMu.Unlock()

	fonts, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: loading fonts: %v", ErrInternal, err)
	}

	var buf bytes.Buffer
	var doc *pdf.PDF
	for i := first; i <= last; i++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}

		geom, err := src.PageSize(i)
		if err != nil {
			return nil, err
		}
		if geom.IsZero() {
			geom = model.Letter
		}
		width, height := geom.Width*mmPerPoint, geom.Height*mmPerPoint

		c := canvas.New(width, height)
		cc := canvas.NewContext(c)
		cc.SetFillColor(canvas.White)
		cc.DrawPath(0, 0, canvas.Rectangle(width, height))

		var page model.Page
		if i < len(contents) {
			page = contents[i]
		}
		drawPage(cc, page, geom, fonts, src.Format(), i)

		if doc == nil {
			doc = pdf.New(&buf, c.W, c.H, nil)
		} else {
			doc.NewPage(c.W, c.H)
		}
		c.RenderTo(doc)
	}
	if err := doc.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing pdf: %v", ErrInternal, err)
	}
	return buf.Bytes(), nil
}

func drawPage(cc *canvas.Context, page model.Page, geom model.PageGeometry, fonts *canvas.FontFamily, f format.Format, index int) {
	switch p := page.(type) {
	case model.WordPage:
		drawWordPage(cc, p, geom, fonts)
	case model.SheetPage:
		drawSheetPage(cc, p, geom, fonts)
	case model.SlidePage:
		drawSlidePage(cc, p, geom, fonts)
	default:
		drawPlaceholder(cc, geom, fonts, f, index)
	}
}

// drawPlaceholder centers a "Page N" style label on an otherwise blank
// page.
func drawPlaceholder(cc *canvas.Context, geom model.PageGeometry, fonts *canvas.FontFamily, f format.Format, index int) {
	label := fmt.Sprintf("%s %d", pageNoun(f.Family()), index+1)
	face := fonts.Face(24, canvas.Gray, canvas.FontRegular, canvas.FontNormal)
	width, height := geom.Width*mmPerPoint, geom.Height*mmPerPoint
	cc.DrawText((width-face.TextWidth(label))/2, height/2, canvas.NewTextLine(face, label, canvas.Left))
}

func pageNoun(f format.Family) string {
	switch f {
	case format.FamilySheet:
		return "Sheet"
	case format.FamilySlide:
		return "Slide"
	default:
		return "Page"
	}
}

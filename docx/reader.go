// Package docx provides DOCX (Office Open XML) word document parsing.
package docx

import (
	"fmt"

	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/ooxml"
	"github.com/tsawler/folio/internal/opc"
	"github.com/tsawler/folio/model"
)

// Package entry names.
const (
	documentEntry  = "word/document.xml"
	corePropsEntry = "docProps/core.xml"
	appPropsEntry  = "docProps/app.xml"
)

// Reader provides access to DOCX document content. It holds no open
// file handle; the archive is reopened for each read.
type Reader struct {
	archive *opc.Archive
}

// Open validates the file at path as a DOCX package.
func Open(path string) (*Reader, error) {
	archive := opc.New(path)
	if err := archive.Validate(); err != nil {
		return nil, err
	}
	if !archive.HasEntry(documentEntry) {
		return nil, fmt.Errorf("%w: %s", opc.ErrMissingEntry, documentEntry)
	}
	return &Reader{archive: archive}, nil
}

// Format returns the format this reader parses.
func (r *Reader) Format() format.Format {
	return format.DOCX
}

// PageCount returns the page count recorded by the producing
// application, falling back to one page per explicit page break plus
// one when the document statistics are absent.
func (r *Reader) PageCount() (int, error) {
	if data, err := r.archive.ReadEntry(appPropsEntry); err == nil {
		if props := ooxml.ParseAppProperties(data); props.Pages > 0 {
			return props.Pages, nil
		}
	}

	body, err := r.parseBody()
	if err != nil {
		return 0, err
	}
	breaks := 0
	for _, p := range body.paragraphs {
		if p.IsPageBreak() {
			breaks++
		}
	}
	return breaks + 1, nil
}

// PageSize returns the page geometry. Word documents declare a single
// section size shared by every page; a document without one is Letter.
func (r *Reader) PageSize(page int) (model.PageGeometry, error) {
	body, err := r.parseBody()
	if err != nil {
		return model.PageGeometry{}, err
	}
	if body.geometry.IsZero() {
		return model.Letter, nil
	}
	return body.geometry, nil
}

// Metadata returns the document summary information.
func (r *Reader) Metadata() (model.Metadata, error) {
	var meta model.Metadata
	if data, err := r.archive.ReadEntry(corePropsEntry); err == nil {
		core := ooxml.ParseCoreProperties(data)
		meta.Title = core.Title
		meta.Author = core.Creator
		meta.Created = core.Created
		meta.Modified = core.Modified
	}
	if data, err := r.archive.ReadEntry(appPropsEntry); err == nil {
		meta.Application = ooxml.ParseAppProperties(data).Application
	}
	return meta, nil
}

// Text returns the document's plain text, one line per paragraph.
func (r *Reader) Text() (string, error) {
	body, err := r.parseBody()
	if err != nil {
		return "", err
	}
	var s string
	for _, p := range body.paragraphs {
		if p.IsPageBreak() {
			continue
		}
		s += p.Text() + "\n"
	}
	return s, nil
}

// BuildPageContents splits the document body into pages at explicit
// page breaks.
func (r *Reader) BuildPageContents() ([]model.Page, error) {
	body, err := r.parseBody()
	if err != nil {
		return nil, err
	}
	margins := model.DefaultMargins
	if body.hasMargins {
		margins = body.margins
	}

	groups := model.SplitParagraphs(body.paragraphs)
	pages := make([]model.Page, 0, len(groups))
	for _, g := range groups {
		pages = append(pages, model.WordPage{Paragraphs: g, Margins: margins})
	}
	return pages, nil
}

func (r *Reader) parseBody() (*documentBody, error) {
	data, err := r.archive.ReadEntry(documentEntry)
	if err != nil {
		return nil, err
	}
	return parseDocument(data)
}

// Package folio reads page counts, page geometry, metadata, and text
// out of office documents, and renders them to PDF. Six formats are
// supported: the OOXML trio (.docx, .xlsx, .pptx) and their binary
// OLE2 predecessors (.doc, .xls, .ppt).
//
// Basic usage:
//
//	doc, err := folio.Open("report.docx")
//	if err != nil {
//	    // handle error
//	}
//	count, err := doc.PageCount()
//	size := doc.PageSize(0)
//	meta := doc.Metadata()
//
// Rendering:
//
//	pdfBytes, err := doc.ExportPDF(context.Background())
//
// For lower-level access the format-specific packages (docx, xlsx,
// pptx, legacy) are also available.
package folio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/folio/docx"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/legacy"
	"github.com/tsawler/folio/pptx"
	"github.com/tsawler/folio/xlsx"
)

// Open opens the office document at path. The format is decided by
// extension, falling back to container magic bytes when the extension
// is unrecognized.
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f := format.Detect(path)
	if f == format.Unknown {
		magic, err := readMagic(path)
		if err != nil {
			return nil, err
		}
		f = format.DetectFromMagic(magic, path)
	}
	if f == format.Unknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	p, err := openParser(f, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedFile, err)
	}
	return &Document{path: path, format: f, parser: p}, nil
}

// Must panics if err is non-nil, for use in program initialization.
func Must(doc *Document, err error) *Document {
	if err != nil {
		panic(err)
	}
	return doc
}

// IsSupported reports whether the filename carries a supported
// extension.
func IsSupported(filename string) bool {
	return format.Detect(filename) != format.Unknown
}

func openParser(f format.Format, path string) (parser, error) {
	switch f {
	case format.DOCX:
		return docx.Open(path)
	case format.XLSX:
		return xlsx.Open(path)
	case format.PPTX:
		return pptx.Open(path)
	case format.DOC:
		return legacy.OpenWord(path)
	case format.XLS:
		return legacy.OpenSheet(path)
	case format.PPT:
		return legacy.OpenSlide(path)
	}
	return nil, fmt.Errorf("no parser for %v", f)
}

func readMagic(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	magic := make([]byte, 8)
	n, err := f.Read(magic)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return magic[:n], nil
}

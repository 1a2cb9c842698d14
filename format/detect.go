// Package format provides file format detection for the folio library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// PPTX indicates a Microsoft PowerPoint (.pptx) presentation.
	PPTX
	// DOC indicates a legacy Microsoft Word (.doc) document.
	DOC
	// XLS indicates a legacy Microsoft Excel (.xls) workbook.
	XLS
	// PPT indicates a legacy Microsoft PowerPoint (.ppt) presentation.
	PPT
)

// Family groups formats by the kind of content they carry.
type Family int

const (
	// FamilyUnknown indicates an unrecognized family.
	FamilyUnknown Family = iota
	// FamilyWord groups the flowed-text word-processing formats.
	FamilyWord
	// FamilySheet groups the spreadsheet formats.
	FamilySheet
	// FamilySlide groups the presentation formats.
	FamilySlide
)

// Container magic numbers. Every modern format is a ZIP archive and
// every legacy format is an OLE2 compound file.
var (
	zipSignature  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case DOC:
		return "DOC"
	case XLS:
		return "XLS"
	case PPT:
		return "PPT"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case PPTX:
		return ".pptx"
	case DOC:
		return ".doc"
	case XLS:
		return ".xls"
	case PPT:
		return ".ppt"
	default:
		return ""
	}
}

// Family returns the content family the format belongs to.
func (f Format) Family() Family {
	switch f {
	case DOCX, DOC:
		return FamilyWord
	case XLSX, XLS:
		return FamilySheet
	case PPTX, PPT:
		return FamilySlide
	default:
		return FamilyUnknown
	}
}

// Legacy reports whether the format is stored in an OLE2 compound file
// rather than a ZIP archive.
func (f Format) Legacy() bool {
	switch f {
	case DOC, XLS, PPT:
		return true
	default:
		return false
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	case ".doc":
		return DOC
	case ".xls":
		return XLS
	case ".ppt":
		return PPT
	default:
		return Unknown
	}
}

// DetectFromMagic determines the format from the file's leading bytes,
// falling back to the filename extension to pick a member within the
// container family. An OLE2 container with no recognizable extension is
// treated as a legacy Word document, the most common case.
func DetectFromMagic(data []byte, filename string) Format {
	byExt := Detect(filename)

	if bytes.HasPrefix(data, zipSignature) {
		if byExt != Unknown && !byExt.Legacy() {
			return byExt
		}
		return Unknown
	}

	if bytes.HasPrefix(data, ole2Signature) {
		if byExt.Legacy() {
			return byExt
		}
		return DOC
	}

	return Unknown
}

// DetectFile determines the format of the file at path, preferring the
// extension and confirming ZIP-based formats by container content when
// the extension alone is inconclusive.
func DetectFile(path string) (Format, error) {
	if f := Detect(path); f != Unknown {
		return f, nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer fh.Close()

	magic := make([]byte, 8)
	n, err := fh.Read(magic)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, ole2Signature) {
		return DOC, nil
	}
	if bytes.HasPrefix(magic, zipSignature) {
		info, err := fh.Stat()
		if err != nil {
			return Unknown, err
		}
		return detectZIPFormat(fh, info.Size())
	}
	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive to determine which OOXML
// format it holds.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}
	return Unknown, nil
}

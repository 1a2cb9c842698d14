package folio

import (
	"errors"

	"github.com/tsawler/folio/export"
)

var (
	// ErrUnsupportedFormat indicates the file is not one of the six
	// supported office formats.
	ErrUnsupportedFormat = errors.New("folio: unsupported file format")
	// ErrFileNotFound indicates the path does not exist.
	ErrFileNotFound = errors.New("folio: file not found")
	// ErrCorruptedFile indicates the file was recognized but its
	// container or content failed to parse.
	ErrCorruptedFile = errors.New("folio: corrupted or unreadable file")
)

// Export errors, surfaced at the package root so callers need not
// import the export package to match them.
var (
	ErrPageOutOfRange  = export.ErrPageOutOfRange
	ErrExportCancelled = export.ErrCancelled
	ErrInternal        = export.ErrInternal
)

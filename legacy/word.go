package legacy

import (
	"fmt"

	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/cfb"
	"github.com/tsawler/folio/internal/oleps"
	"github.com/tsawler/folio/model"
)

// WordReader provides access to legacy DOC documents.
type WordReader struct {
	path string
}

// OpenWord validates the file at path as an OLE2 container.
func OpenWord(path string) (*WordReader, error) {
	if err := validateContainer(path); err != nil {
		return nil, err
	}
	return &WordReader{path: path}, nil
}

// Format returns the format this reader parses.
func (r *WordReader) Format() format.Format {
	return format.DOC
}

// PageCount returns the page count recorded in the summary stream.
// Word always writes the statistic, so a readable container without it
// counts as a single page.
func (r *WordReader) PageCount() (int, error) {
	stream, err := cfb.ReadStream(r.path, cfb.SummaryInformation)
	if err != nil {
		return 0, err
	}
	props, err := oleps.Parse(stream)
	if err != nil {
		return 0, fmt.Errorf("reading summary stream: %w", err)
	}
	count, ok := props.Int(oleps.PIDPageCount)
	if !ok || count < 1 {
		return 1, nil
	}
	return int(count), nil
}

// PageSize returns the document page geometry from the document summary
// stream, which records it in twips. Documents without the properties
// are Letter.
func (r *WordReader) PageSize(page int) (model.PageGeometry, error) {
	stream, err := cfb.ReadStream(r.path, cfb.DocumentSummaryInformation)
	if err != nil {
		return model.Letter, nil
	}
	props, err := oleps.Parse(stream)
	if err != nil {
		return model.Letter, nil
	}
	width, wok := props.Int(oleps.PIDDocWidth)
	height, hok := props.Int(oleps.PIDDocHeight)
	if !wok || !hok || width <= 0 || height <= 0 {
		return model.Letter, nil
	}
	return model.PageGeometry{
		Width:  float64(width) / 20,
		Height: float64(height) / 20,
	}, nil
}

// Metadata returns the document summary information.
func (r *WordReader) Metadata() (model.Metadata, error) {
	return summaryMetadata(r.path), nil
}

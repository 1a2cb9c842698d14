// Package legacy provides parsing for the binary OLE2-era office
// formats: DOC, XLS, and PPT. Page geometry and counts come from the
// container's property-set and content streams; full body text layout
// is out of reach for these formats, so they carry no page contents.
package legacy

import (
	"github.com/tsawler/folio/internal/cfb"
	"github.com/tsawler/folio/internal/oleps"
	"github.com/tsawler/folio/model"
)

// validateContainer checks that the file parses as an OLE2 compound
// file by walking its directory.
func validateContainer(path string) error {
	_, err := cfb.StreamNames(path)
	return err
}

// summaryMetadata reads the title, author, and timestamps out of the
// SummaryInformation stream. Absent streams or properties simply leave
// the metadata zero.
func summaryMetadata(path string) model.Metadata {
	var meta model.Metadata
	stream, err := cfb.ReadStream(path, cfb.SummaryInformation)
	if err != nil {
		return meta
	}
	props, err := oleps.Parse(stream)
	if err != nil {
		return meta
	}
	if v, ok := props.String(oleps.PIDTitle); ok {
		meta.Title = v
	}
	if v, ok := props.String(oleps.PIDAuthor); ok {
		meta.Author = v
	}
	if v, ok := props.Time(oleps.PIDCreated); ok {
		meta.Created = v
	}
	if v, ok := props.Time(oleps.PIDModified); ok {
		meta.Modified = v
	}
	return meta
}

// Package pptx provides PPTX (Office Open XML) presentation parsing.
package pptx

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/ooxml"
	"github.com/tsawler/folio/internal/opc"
	"github.com/tsawler/folio/model"
)

// Package entry names.
const (
	presentationEntry     = "ppt/presentation.xml"
	presentationRelsEntry = "ppt/_rels/presentation.xml.rels"
	corePropsEntry        = "docProps/core.xml"
	appPropsEntry         = "docProps/app.xml"
)

// slideRelType is the suffix of the relationship type that binds a
// presentation to one of its slides.
const slideRelType = "/slide"

// Reader provides access to PPTX presentation content. Each slide is
// one page.
type Reader struct {
	archive *opc.Archive
}

// Open validates the file at path as a PPTX package.
func Open(path string) (*Reader, error) {
	archive := opc.New(path)
	if err := archive.Validate(); err != nil {
		return nil, err
	}
	if !archive.HasEntry(presentationEntry) {
		return nil, fmt.Errorf("%w: %s", opc.ErrMissingEntry, presentationEntry)
	}
	return &Reader{archive: archive}, nil
}

// Format returns the format this reader parses.
func (r *Reader) Format() format.Format {
	return format.PPTX
}

// PageCount returns the number of slides in presentation order. A deck
// that declares no slides still counts one page.
func (r *Reader) PageCount() (int, error) {
	pres, err := r.presentation()
	if err != nil {
		return 0, err
	}
	if len(pres.slideIDs) == 0 {
		return 1, nil
	}
	return len(pres.slideIDs), nil
}

// PageSize returns the slide geometry declared by the presentation,
// defaulting to 16:9 widescreen.
func (r *Reader) PageSize(page int) (model.PageGeometry, error) {
	pres, err := r.presentation()
	if err != nil {
		return model.PageGeometry{}, err
	}
	if pres.slideSize.IsZero() {
		return model.SlideDefault, nil
	}
	return pres.slideSize, nil
}

// Metadata returns the presentation summary information.
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

// Text returns the text of every slide, one line per text-frame line.
func (r *Reader) Text() (string, error) {
	pages, err := r.BuildPageContents()
	if err != nil {
		return "", err
	}
	var s string
	for _, page := range pages {
		slide := page.(model.SlidePage)
		for _, box := range slide.Boxes {
			for _, line := range box.Lines {
				s += line + "\n"
			}
		}
	}
	return s, nil
}

// BuildPageContents parses every slide into its positioned text frames,
// in presentation order. A slide whose part cannot be resolved still
// yields an empty page.
func (r *Reader) BuildPageContents() ([]model.Page, error) {
	pres, err := r.presentation()
	if err != nil {
		return nil, err
	}
	if len(pres.slideIDs) == 0 {
		return []model.Page{model.SlidePage{}}, nil
	}

	targets := r.slideTargets()
	pages := make([]model.Page, 0, len(pres.slideIDs))
	for _, relID := range pres.slideIDs {
		page := model.SlidePage{}
		if target, ok := targets[relID]; ok {
			if data, err := r.archive.ReadEntry(target); err == nil {
				page.Boxes = parseSlide(data)
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// slideTargets maps relationship IDs to slide part names, keeping only
// slide relationships so notes and masters never count as pages.
func (r *Reader) slideTargets() map[string]string {
	targets := make(map[string]string)
	data, err := r.archive.ReadEntry(presentationRelsEntry)
	if err != nil {
		return targets
	}
	rels, err := ooxml.ParseRelationships(data)
	if err != nil {
		return targets
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, slideRelType) {
			targets[rel.ID] = ooxml.ResolveTarget("ppt", rel.Target)
		}
	}
	return targets
}

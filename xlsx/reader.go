// Package xlsx provides XLSX (Office Open XML) workbook parsing.
package xlsx

import (
	"fmt"

	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/ooxml"
	"github.com/tsawler/folio/internal/opc"
	"github.com/tsawler/folio/model"
)

// Package entry names.
const (
	workbookEntry      = "xl/workbook.xml"
	workbookRelsEntry  = "xl/_rels/workbook.xml.rels"
	sharedStringsEntry = "xl/sharedStrings.xml"
	corePropsEntry     = "docProps/core.xml"
	appPropsEntry      = "docProps/app.xml"
)

// Reader provides access to XLSX workbook content. Each worksheet is
// presented as one page.
type Reader struct {
	archive *opc.Archive
}

// Open validates the file at path as an XLSX package.
func Open(path string) (*Reader, error) {
	archive := opc.New(path)
	if err := archive.Validate(); err != nil {
		return nil, err
	}
	if !archive.HasEntry(workbookEntry) {
		return nil, fmt.Errorf("%w: %s", opc.ErrMissingEntry, workbookEntry)
	}
	return &Reader{archive: archive}, nil
}

// Format returns the format this reader parses.
func (r *Reader) Format() format.Format {
	return format.XLSX
}

// PageCount returns the number of worksheets. A workbook that declares
// no sheets still counts one page.
func (r *Reader) PageCount() (int, error) {
	sheets, err := r.sheetList()
	if err != nil {
		return 0, err
	}
	if len(sheets) == 0 {
		return 1, nil
	}
	return len(sheets), nil
}

// PageSize returns the geometry of the given worksheet, resolved from
// its declared print paper size. Worksheets without a page setup are A4.
func (r *Reader) PageSize(page int) (model.PageGeometry, error) {
	sheets, err := r.sheetList()
	if err != nil {
		return model.PageGeometry{}, err
	}
	if page < 0 || page >= len(sheets) {
		return model.A4, nil
	}

	target, err := r.sheetTarget(sheets[page].relID)
	if err != nil {
		return model.A4, nil
	}
	data, err := r.archive.ReadEntry(target)
	if err != nil {
		return model.A4, nil
	}
	return paperSize(parseWorksheet(data).paperSize), nil
}

// Metadata returns the workbook summary information.
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

// Text returns the populated cells of every sheet as tab-separated
// rows.
func (r *Reader) Text() (string, error) {
	pages, err := r.BuildPageContents()
	if err != nil {
		return "", err
	}
	var s string
	for i, page := range pages {
		sheet := page.(model.SheetPage)
		if i > 0 {
			s += "\n"
		}
		s += sheetText(sheet)
	}
	return s, nil
}

// BuildPageContents parses every worksheet into its populated cells.
// A sheet whose part cannot be resolved still yields an empty page, so
// page counting and content stay aligned.
func (r *Reader) BuildPageContents() ([]model.Page, error) {
	sheets, err := r.sheetList()
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return []model.Page{model.SheetPage{SheetName: "Sheet1"}}, nil
	}

	shared := r.sharedStrings()
	pages := make([]model.Page, 0, len(sheets))
	for _, sheet := range sheets {
		page := model.SheetPage{SheetName: sheet.name}
		if target, err := r.sheetTarget(sheet.relID); err == nil {
			if data, err := r.archive.ReadEntry(target); err == nil {
				page.Cells = parseWorksheet(data).resolveCells(shared)
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (r *Reader) sharedStrings() []string {
	data, err := r.archive.ReadEntry(sharedStringsEntry)
	if err != nil {
		return nil
	}
	return parseSharedStrings(data)
}

func (r *Reader) sheetTarget(relID string) (string, error) {
	data, err := r.archive.ReadEntry(workbookRelsEntry)
	if err != nil {
		return "", err
	}
	rels, err := ooxml.ParseRelationships(data)
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.ID == relID {
			return ooxml.ResolveTarget("xl", rel.Target), nil
		}
	}
	return "", fmt.Errorf("xlsx: no relationship %q", relID)
}

func sheetText(sheet model.SheetPage) string {
	maxRow := -1
	for _, c := range sheet.Cells {
		if c.Row > maxRow {
			maxRow = c.Row
		}
	}
	byPos := make(map[[2]int]string, len(sheet.Cells))
	maxCol := make(map[int]int)
	for _, c := range sheet.Cells {
		byPos[[2]int{c.Row, c.Col}] = c.Text
		if c.Col > maxCol[c.Row] {
			maxCol[c.Row] = c.Col
		}
	}

	var s string
	for row := 0; row <= maxRow; row++ {
		for col := 0; col <= maxCol[row]; col++ {
			if col > 0 {
				s += "\t"
			}
			s += byPos[[2]int{row, col}]
		}
		s += "\n"
	}
	return s
}

package xlsx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/tsawler/folio/internal/ooxml"
	"github.com/tsawler/folio/model"
)

// sheetEntry is one worksheet declaration from xl/workbook.xml, in
// workbook order.
type sheetEntry struct {
	name  string
	relID string
}

func (r *Reader) sheetList() ([]sheetEntry, error) {
	data, err := r.archive.ReadEntry(workbookEntry)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var sheets []sheetEntry
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		sheets = append(sheets, sheetEntry{
			name:  ooxml.AttrVal(se, "name"),
			relID: ooxml.AttrVal(se, "id"),
		})
	}
	return sheets, nil
}

// parseSharedStrings flattens the shared-string table. Each <si> item
// becomes one string, with rich-text runs concatenated.
func parseSharedStrings(data []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		strs    []string
		current strings.Builder
		inItem  bool
		inText  bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inItem = true
				current.Reset()
			case "t":
				if inItem {
					inText = true
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "si":
				strs = append(strs, current.String())
				inItem = false
			}
		}
	}
	return strs
}

// rawCell is a worksheet cell before shared-string resolution.
type rawCell struct {
	ref    string
	typ    string
	value  string
	inline string
}

// worksheet is the parsed content of one sheet part.
type worksheet struct {
	paperSize int
	cells     []rawCell
}

func parseWorksheet(data []byte) *worksheet {
	dec := xml.NewDecoder(bytes.NewReader(data))
	ws := &worksheet{}

	var (
		cell     rawCell
		inCell   bool
		inValue  bool
		inInline bool
		inInlT   bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pageSetup":
				if v, err := strconv.Atoi(ooxml.AttrVal(t, "paperSize")); err == nil {
					ws.paperSize = v
				}
			case "c":
				inCell = true
				cell = rawCell{
					ref: ooxml.AttrVal(t, "r"),
					typ: ooxml.AttrVal(t, "t"),
				}
			case "v":
				if inCell {
					inValue = true
				}
			case "is":
				if inCell {
					inInline = true
				}
			case "t":
				if inInline {
					inInlT = true
				}
			}
		case xml.CharData:
			if inValue {
				cell.value += string(t)
			}
			if inInlT {
				cell.inline += string(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v":
				inValue = false
			case "t":
				inInlT = false
			case "is":
				inInline = false
			case "c":
				if inCell {
					ws.cells = append(ws.cells, cell)
				}
				inCell = false
			}
		}
	}
	return ws
}

// resolveCells turns raw cells into positioned display text.
func (ws *worksheet) resolveCells(shared []string) []model.Cell {
	var cells []model.Cell
	for _, raw := range ws.cells {
		col, row, err := ParseCellRef(raw.ref)
		if err != nil {
			continue
		}
		var text string
		switch raw.typ {
		case "s":
			idx, err := strconv.Atoi(strings.TrimSpace(raw.value))
			if err == nil && idx >= 0 && idx < len(shared) {
				text = shared[idx]
			}
		case "b":
			if strings.TrimSpace(raw.value) == "1" {
				text = "TRUE"
			} else {
				text = "FALSE"
			}
		case "inlineStr":
			text = raw.inline
		default:
			text = raw.value
		}
		if text == "" {
			continue
		}
		cells = append(cells, model.Cell{Col: col, Row: row, Text: text})
	}
	return cells
}

// paperSize maps the SpreadsheetML pageSetup paper-size code to a page
// geometry. Codes outside the common set resolve to A4.
func paperSize(code int) model.PageGeometry {
	switch code {
	case 1, 9:
		return model.Letter
	case 5:
		return model.Legal
	case 8, 26:
		return model.A4
	default:
		return model.A4
	}
}

package pptx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/tsawler/folio/internal/ooxml"
	"github.com/tsawler/folio/model"
)

// emuPerPoint converts DrawingML English Metric Units to PDF points.
const emuPerPoint = 12700

// presentation is the parsed content of ppt/presentation.xml.
type presentation struct {
	// slideIDs holds the relationship IDs of the slides in show order.
	slideIDs  []string
	slideSize model.PageGeometry
}

func (r *Reader) presentation() (*presentation, error) {
	data, err := r.archive.ReadEntry(presentationEntry)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	pres := &presentation{}
	inList := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sldIdLst":
				inList = true
			case "sldId":
				if inList {
					if id := ooxml.AttrVal(t, "id"); id != "" {
						pres.slideIDs = append(pres.slideIDs, relIDAttr(t))
					}
				}
			case "sldSz":
				pres.slideSize = model.PageGeometry{
					Width:  emuAttr(t, "cx") / emuPerPoint,
					Height: emuAttr(t, "cy") / emuPerPoint,
				}
			}
		case xml.EndElement:
			if t.Name.Local == "sldIdLst" {
				inList = false
			}
		}
	}
	return pres, nil
}

// relIDAttr picks the relationship-namespace id attribute off a sldId
// element, which also carries a plain numeric id.
func relIDAttr(se xml.StartElement) string {
	for _, a := range se.Attr {
		if a.Name.Local == "id" && a.Name.Space != "" {
			return a.Value
		}
	}
	return ""
}

// parseSlide extracts the positioned text frames of one slide part.
// Shapes without any text are dropped.
func parseSlide(data []byte) []model.TextBox {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		boxes   []model.TextBox
		box     model.TextBox
		inShape bool
		inPara  bool
		inText  bool
		line    strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				inShape = true
				box = model.TextBox{}
			case "ph":
				if inShape {
					phType := ooxml.AttrVal(t, "type")
					box.IsTitle = phType == "title" || phType == "ctrTitle"
				}
			case "off":
				if inShape {
					box.X = emuAttr(t, "x") / emuPerPoint
					box.Y = emuAttr(t, "y") / emuPerPoint
				}
			case "ext":
				if inShape {
					box.Width = emuAttr(t, "cx") / emuPerPoint
					box.Height = emuAttr(t, "cy") / emuPerPoint
				}
			case "p":
				if inShape {
					inPara = true
					line.Reset()
				}
			case "t":
				if inPara {
					inText = true
				}
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara {
					box.Lines = append(box.Lines, line.String())
					inPara = false
				}
			case "sp":
				if inShape && hasText(box.Lines) {
					boxes = append(boxes, box)
				}
				inShape = false
			}
		}
	}
	return boxes
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

func emuAttr(se xml.StartElement, local string) float64 {
	v, err := strconv.ParseFloat(ooxml.AttrVal(se, local), 64)
	if err != nil {
		return 0
	}
	return v
}

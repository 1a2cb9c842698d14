package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/tsawler/folio/internal/ooxml"
	"github.com/tsawler/folio/model"
)

// documentBody is the parsed content of word/document.xml.
type documentBody struct {
	paragraphs []model.Paragraph
	geometry   model.PageGeometry
	margins    model.Margins
	hasMargins bool
}

// parseDocument walks the document part token by token. WordprocessingML
// bodies routinely run to many megabytes, so the whole part is never
// decoded into a DOM.
func parseDocument(data []byte) (*documentBody, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	body := &documentBody{}

	var (
		inParagraph bool
		inRun       bool
		inRunProps  bool
		inText      bool
		para        model.Paragraph
		run         model.Run
		brokePara   bool
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				para = model.Paragraph{}
				brokePara = false
			case "pStyle":
				if inParagraph && !inRun {
					para.StyleName = ooxml.AttrVal(t, "val")
				}
			case "spacing":
				if inParagraph && !inRun {
					para.SpacingAfterPt = twipsAttr(t, "after") / 20
				}
			case "r":
				if inParagraph {
					inRun = true
					run = model.Run{}
				}
			case "rPr":
				if inRun {
					inRunProps = true
				}
			case "b":
				if inRunProps {
					run.Bold = onOff(ooxml.AttrVal(t, "val"))
				}
			case "i":
				if inRunProps {
					run.Italic = onOff(ooxml.AttrVal(t, "val"))
				}
			case "sz":
				if inRunProps {
					if v, err := strconv.ParseFloat(ooxml.AttrVal(t, "val"), 64); err == nil {
						run.SizePt = v / 2
					}
				}
			case "color":
				if inRunProps {
					run.Color = model.ParseHexColor(ooxml.AttrVal(t, "val"))
				}
			case "t":
				if inRun && !inRunProps {
					inText = true
				}
			case "tab":
				if inRun && !inRunProps {
					run.Text += "\t"
				}
			case "br":
				if !inRun || inRunProps {
					break
				}
				if ooxml.AttrVal(t, "type") == "page" {
					if run.Text != "" {
						para.Runs = append(para.Runs, run)
						run.Text = ""
					}
					body.paragraphs = append(body.paragraphs, para)
					body.paragraphs = append(body.paragraphs, model.Paragraph{StyleName: model.PageBreakStyle})
					para = model.Paragraph{StyleName: para.StyleName, SpacingAfterPt: para.SpacingAfterPt}
					brokePara = true
				} else {
					run.Text += "\n"
				}
			case "pgSz":
				body.geometry = model.PageGeometry{
					Width:  twipsAttr(t, "w") / 20,
					Height: twipsAttr(t, "h") / 20,
				}
			case "pgMar":
				if !body.hasMargins {
					body.margins = model.Margins{
						Top:    twipsAttr(t, "top") / 20,
						Right:  twipsAttr(t, "right") / 20,
						Bottom: twipsAttr(t, "bottom") / 20,
						Left:   twipsAttr(t, "left") / 20,
					}
					body.hasMargins = true
				}
			}
		case xml.CharData:
			if inText {
				run.Text += string(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "rPr":
				inRunProps = false
			case "r":
				if inRun && run.Text != "" {
					para.Runs = append(para.Runs, run)
				}
				inRun = false
			case "p":
				if !brokePara || len(para.Runs) > 0 {
					body.paragraphs = append(body.paragraphs, para)
				}
				inParagraph = false
			}
		}
	}

	if inParagraph || inRun {
		return nil, fmt.Errorf("docx: truncated document body")
	}
	return body, nil
}

// onOff interprets a WordprocessingML toggle attribute, where absence
// of the value means enabled.
func onOff(val string) bool {
	return val != "0" && val != "false" && val != "off"
}

func twipsAttr(se xml.StartElement, local string) float64 {
	v, err := strconv.ParseFloat(ooxml.AttrVal(se, local), 64)
	if err != nil {
		return 0
	}
	return v
}

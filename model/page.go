package model

// Page is the renderable content of one page, sheet, or slide. The
// concrete type depends on the document family.
type Page interface {
	isPage()
}

// WordPage is one page of a flowed word-processing document.
type WordPage struct {
	Paragraphs []Paragraph
	Margins    Margins
}

func (WordPage) isPage() {}

// Cell is a single populated spreadsheet cell.
type Cell struct {
	// Col and Row are zero-based grid coordinates.
	Col  int
	Row  int
	Text string
}

// SheetPage is one worksheet rendered as a page.
type SheetPage struct {
	SheetName string
	Cells     []Cell
}

func (SheetPage) isPage() {}

// TextBox is a positioned text frame on a slide. Coordinates are in
// points with the origin at the top-left of the slide.
type TextBox struct {
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Lines   []string
	IsTitle bool
}

// SlidePage is one presentation slide.
type SlidePage struct {
	Boxes []TextBox
}

func (SlidePage) isPage() {}

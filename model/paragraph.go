package model

// Run is a span of text with uniform formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// SizePt is the font size in points, 0 when the run inherits the
	// document default.
	SizePt float64
	// Color is nil when the run uses the default text color.
	Color *Color
}

// PageBreakStyle marks a sentinel paragraph standing for an explicit
// page break. Sentinels carry no runs and never appear in rendered
// output.
const PageBreakStyle = "__page_break__"

// Paragraph is an ordered sequence of runs with block-level formatting.
type Paragraph struct {
	Runs []Run
	// StyleName is the declared paragraph style, e.g. "Heading1".
	StyleName string
	// SpacingAfterPt is the extra vertical space after the paragraph,
	// in points.
	SpacingAfterPt float64
}

// IsPageBreak reports whether the paragraph is a page-break sentinel.
func (p Paragraph) IsPageBreak() bool {
	return p.StyleName == PageBreakStyle
}

// Text concatenates the paragraph's run text.
func (p Paragraph) Text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// SplitParagraphs partitions paragraphs into pages at page-break
// sentinels. N sentinels always yield N+1 groups, so consecutive breaks
// produce empty pages and the sentinels themselves are dropped.
func SplitParagraphs(paras []Paragraph) [][]Paragraph {
	pages := [][]Paragraph{nil}
	for _, p := range paras {
		if p.IsPageBreak() {
			pages = append(pages, nil)
			continue
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], p)
	}
	return pages
}

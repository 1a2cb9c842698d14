package export

import (
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/tsawler/folio/model"
)

// Word rendering defaults, in points.
const (
	defaultFontSize   = 11.0
	lineHeightFactor  = 1.15
	paragraphGapAfter = 4.0
)

// drawWordPage lays the page's paragraphs into the printable area with
// greedy word wrapping. Content past the bottom margin is clipped; the
// page split was already decided by the document's own breaks.
func drawWordPage(cc *canvas.Context, page model.WordPage, geom model.PageGeometry, fonts *canvas.FontFamily) {
	left := page.Margins.Left * mmPerPoint
	right := (geom.Width - page.Margins.Right) * mmPerPoint
	bottom := page.Margins.Bottom * mmPerPoint
	y := (geom.Height - page.Margins.Top) * mmPerPoint

	for _, para := range page.Paragraphs {
		if y < bottom {
			break
		}
		y = drawParagraph(cc, para, fonts, left, right, y, bottom)
		gap := para.SpacingAfterPt
		if gap == 0 {
			gap = paragraphGapAfter
		}
		y -= gap * mmPerPoint
	}
}

// wordFragment is one wrap unit with its resolved face.
type wordFragment struct {
	text  string
	face  *canvas.FontFace
	width float64
	size  float64
}

// drawParagraph renders one paragraph starting with its baseline below
// y, returning the y position under its last line.
func drawParagraph(cc *canvas.Context, para model.Paragraph, fonts *canvas.FontFamily, left, right, y, bottom float64) float64 {
	frags := fragments(para, fonts)
	lineHeight := maxSize(frags) * lineHeightFactor * mmPerPoint
	if len(frags) == 0 {
		// An empty paragraph still takes a blank line.
		return y - defaultFontSize*lineHeightFactor*mmPerPoint
	}

	x := left
	y -= lineHeight
	for _, frag := range frags {
		if x+frag.width > right && x > left {
			x = left
			y -= lineHeight
			if y < bottom {
				return y
			}
		}
		if strings.TrimSpace(frag.text) != "" {
			cc.DrawText(x, y, canvas.NewTextLine(frag.face, frag.text, canvas.Left))
		}
		x += frag.width
	}
	return y
}

// fragments splits a paragraph's runs into word-level wrap units,
// keeping each word's trailing space attached so spacing survives
// wrapping.
func fragments(para model.Paragraph, fonts *canvas.FontFamily) []wordFragment {
	var frags []wordFragment
	for _, run := range para.Runs {
		size := run.SizePt
		if size <= 0 {
			size = defaultFontSize
		}
		face := fonts.Face(size, runColor(run.Color), runStyle(run.Bold, run.Italic), canvas.FontNormal)
		for _, word := range splitWords(run.Text) {
			frags = append(frags, wordFragment{
				text:  word,
				face:  face,
				width: face.TextWidth(word),
				size:  size,
			})
		}
	}
	return frags
}

// splitWords cuts text after each space so every piece is an atomic
// wrap unit.
func splitWords(text string) []string {
	var words []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			words = append(words, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		words = append(words, text[start:])
	}
	return words
}

func maxSize(frags []wordFragment) float64 {
	size := defaultFontSize
	for _, f := range frags {
		if f.size > size {
			size = f.size
		}
	}
	return size
}

func runColor(c *model.Color) color.Color {
	if c == nil {
		return canvas.Black
	}
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

package export

import (
	"github.com/tdewolff/canvas"

	"github.com/tsawler/folio/model"
)

// Slide rendering defaults, in points.
const (
	slideTitleSize = 20.0
	slideBodySize  = 14.0
	slideInset     = 36.0
)

// drawSlidePage renders each text frame at its declared position.
// Frames without a declared position are stacked down the left inset.
func drawSlidePage(cc *canvas.Context, page model.SlidePage, geom model.PageGeometry, fonts *canvas.FontFamily) {
	flowY := geom.Height - slideInset
	for _, box := range page.Boxes {
		size := slideBodySize
		style := canvas.FontRegular
		if box.IsTitle {
			size = slideTitleSize
			style = canvas.FontBold
		}
		face := fonts.Face(size, canvas.Black, style, canvas.FontNormal)
		lineHeight := size * lineHeightFactor

		x := box.X
		top := geom.Height - box.Y
		if box.Width == 0 && box.Height == 0 {
			x = slideInset
			top = flowY
		}

		y := top
		for _, line := range box.Lines {
			y -= lineHeight
			if line != "" {
				cc.DrawText(x*mmPerPoint, y*mmPerPoint, canvas.NewTextLine(face, line, canvas.Left))
			}
		}
		if y < flowY {
			flowY = y - lineHeight
		}
	}
}

package export

import (
	"strconv"

	"github.com/tdewolff/canvas"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/xlsx"
)

// Sheet grid dimensions, in points.
const (
	sheetMargin   = 36.0
	cellWidth     = 80.0
	cellHeight    = 20.0
	headerWidth   = 30.0
	sheetFontSize = 9.0
	cellPad       = 3.0
)

// drawSheetPage renders a worksheet as a bounded grid: sheet name on
// top, column letters and row numbers as headers, then whatever cells
// fit on the page. Cells past the grid extent are dropped, not
// overflowed onto extra pages.
func drawSheetPage(cc *canvas.Context, page model.SheetPage, geom model.PageGeometry, fonts *canvas.FontFamily) {
	titleFace := fonts.Face(12, canvas.Black, canvas.FontBold, canvas.FontNormal)
	headFace := fonts.Face(sheetFontSize, canvas.Dimgray, canvas.FontBold, canvas.FontNormal)
	cellFace := fonts.Face(sheetFontSize, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	pageH := geom.Height * mmPerPoint
	titleY := pageH - sheetMargin*mmPerPoint
	cc.DrawText(sheetMargin*mmPerPoint, titleY, canvas.NewTextLine(titleFace, page.SheetName, canvas.Left))

	// Grid extent: what the data needs, clamped to what the page fits.
	cols, rows := 0, 0
	for _, c := range page.Cells {
		if c.Col+1 > cols {
			cols = c.Col + 1
		}
		if c.Row+1 > rows {
			rows = c.Row + 1
		}
	}
	availW := geom.Width - 2*sheetMargin - headerWidth
	availH := geom.Height - 2*sheetMargin - 3*cellHeight
	if max := int(availW / cellWidth); cols > max {
		cols = max
	}
	if max := int(availH / cellHeight); rows > max {
		rows = max
	}
	if cols == 0 || rows == 0 {
		return
	}

	gridLeft := sheetMargin
	gridTop := geom.Height - sheetMargin - 2*cellHeight
	gridW := headerWidth + float64(cols)*cellWidth
	gridH := float64(rows+1) * cellHeight

	drawGridLines(cc, gridLeft, gridTop, gridW, gridH, cols, rows)

	// Header row and column.
	for col := 0; col < cols; col++ {
		x := gridLeft + headerWidth + float64(col)*cellWidth + cellPad
		drawCellText(cc, headFace, xlsx.ColumnLabel(col), x, gridTop, cellWidth-2*cellPad)
	}
	for row := 0; row < rows; row++ {
		y := gridTop - float64(row+1)*cellHeight
		drawCellText(cc, headFace, strconv.Itoa(row+1), gridLeft+cellPad, y, headerWidth-2*cellPad)
	}

	for _, c := range page.Cells {
		if c.Col >= cols || c.Row >= rows {
			continue
		}
		x := gridLeft + headerWidth + float64(c.Col)*cellWidth + cellPad
		y := gridTop - float64(c.Row+1)*cellHeight
		drawCellText(cc, cellFace, c.Text, x, y, cellWidth-2*cellPad)
	}
}

// drawGridLines strokes the cell borders. Coordinates are in points;
// the stroke happens in canvas millimetres.
func drawGridLines(cc *canvas.Context, left, top, width, height float64, cols, rows int) {
	cc.SetStrokeColor(canvas.Lightgray)
	cc.SetStrokeWidth(0.15)

	for i := 0; i <= rows+1; i++ {
		y := (top - float64(i)*cellHeight) * mmPerPoint
		cc.MoveTo(left*mmPerPoint, y)
		cc.LineTo((left+width)*mmPerPoint, y)
		cc.Stroke()
	}
	cc.MoveTo(left*mmPerPoint, top*mmPerPoint)
	cc.LineTo(left*mmPerPoint, (top-height)*mmPerPoint)
	cc.Stroke()
	for i := 0; i <= cols; i++ {
		x := (left + headerWidth + float64(i)*cellWidth) * mmPerPoint
		cc.MoveTo(x, top*mmPerPoint)
		cc.LineTo(x, (top-height)*mmPerPoint)
		cc.Stroke()
	}
}

// drawCellText draws text at the top-left of a cell box given in
// points, truncated to the cell's inner width.
func drawCellText(cc *canvas.Context, face *canvas.FontFace, text string, x, cellTop, maxWidth float64) {
	maxMM := maxWidth * mmPerPoint
	for len(text) > 0 && face.TextWidth(text) > maxMM {
		runes := []rune(text)
		text = string(runes[:len(runes)-1])
	}
	if text == "" {
		return
	}
	baseline := (cellTop - cellHeight + (cellHeight-sheetFontSize)/2) * mmPerPoint
	cc.DrawText(x*mmPerPoint, baseline, canvas.NewTextLine(face, text, canvas.Left))
}

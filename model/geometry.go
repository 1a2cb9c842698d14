package model

// PageGeometry is the physical size of a page in PDF points
// (1/72 inch).
type PageGeometry struct {
	Width  float64
	Height float64
}

// Standard page sizes in points.
var (
	// Letter is US Letter, 8.5 by 11 inches.
	Letter = PageGeometry{Width: 612, Height: 792}
	// Legal is US Legal, 8.5 by 14 inches.
	Legal = PageGeometry{Width: 612, Height: 1008}
	// A4 is ISO A4, 210 by 297 millimetres.
	A4 = PageGeometry{Width: 595.28, Height: 841.89}
	// SlideDefault is the 16:9 widescreen slide size, 10 by 5.625 inches.
	SlideDefault = PageGeometry{Width: 720, Height: 405}
)

// IsZero reports whether the geometry carries no size at all.
func (g PageGeometry) IsZero() bool {
	return g.Width == 0 && g.Height == 0
}

// Landscape reports whether the page is wider than it is tall.
func (g PageGeometry) Landscape() bool {
	return g.Width > g.Height
}

// Margins is the printable-area inset of a page, in points.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins is the one-inch inset used when a document does not
// declare its own.
var DefaultMargins = Margins{Top: 72, Right: 72, Bottom: 72, Left: 72}

package export

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontFamily *canvas.FontFamily
	fontErr    error
)

// loadFonts loads the embedded Go font family once. Embedding the
// faces keeps output identical across machines instead of depending on
// whatever the host has installed.
func loadFonts() (*canvas.FontFamily, error) {
	fontOnce.Do(func() {
		faces := []struct {
			data  []byte
			style canvas.FontStyle
		}{
			{goregular.TTF, canvas.FontRegular},
			{gobold.TTF, canvas.FontBold},
			{goitalic.TTF, canvas.FontItalic},
			{gobolditalic.TTF, canvas.FontBold | canvas.FontItalic},
		}
		ff := canvas.NewFontFamily("go")
		for _, f := range faces {
			if err := ff.LoadFont(f.data, 0, f.style); err != nil {
				fontErr = fmt.Errorf("loading embedded font: %w", err)
				return
			}
		}
		fontFamily = ff
	})
	return fontFamily, fontErr
}

// runStyle maps bold and italic flags onto a font style.
func runStyle(bold, italic bool) canvas.FontStyle {
	style := canvas.FontRegular
	if bold {
		style |= canvas.FontBold
	}
	if italic {
		style |= canvas.FontItalic
	}
	return style
}

package model

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Black is the default text color.
var Black = Color{A: 1}

// ParseHexColor parses a 6-digit hex color, with or without a leading
// '#'. Anything else, including the "auto" keyword used by word
// documents, returns nil meaning the default color applies.
func ParseHexColor(s string) *Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return nil
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return nil
		}
		v[i] = float64(hi*16+lo) / 255
	}
	return &Color{R: v[0], G: v[1], B: v[2], A: 1}
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

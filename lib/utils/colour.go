package utils

import (
	"fmt"
	"image/color"
	"regexp"
)

var colourRegexp = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

func ColourValidate(c string) bool {
	return colourRegexp.MatchString(c)
}

// ColourParse reads a #rrggbbaa colour. Invalid input yields zero components.
func ColourParse(s string) (c color.RGBA) {
	fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	return
}

// Colour is a colour with components in the range [0, 1], as GL wants them
type Colour struct {
	R, G, B, A float32
}

func ColourNormalize(c color.RGBA) Colour {
	return Colour{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

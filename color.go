package piechart

import (
	"fmt"
	"image/color"
	"strings"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the colour as a lowercase "rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a colour in "RGB" or "RRGGBB" form, with or without a
// leading '#'.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")

	var r, g, b uint32
	switch len(s) {
	case 3:
		if !parseHex(s[0:1], &r) || !parseHex(s[1:2], &g) || !parseHex(s[2:3], &b) {
			return RGB{}, fmt.Errorf("piechart: invalid colour %q", hex)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(s[0:2], &r) || !parseHex(s[2:4], &g) || !parseHex(s[4:6], &b) {
			return RGB{}, fmt.Errorf("piechart: invalid colour %q", hex)
		}
	default:
		return RGB{}, fmt.Errorf("piechart: invalid colour %q", hex)
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Palette is an ordered list of slice colours, assigned cyclically.
type Palette []RGB

// defaultPalette holds the pastel colours used when no palette is configured.
var defaultPalette = mustPalette("a4a4ff", "a4ffa4", "ffa4a4", "a4ffff", "ffa4ff", "ffffa4")

// DefaultPalette returns a copy of the built-in six colour palette.
func DefaultPalette() Palette {
	return append(Palette(nil), defaultPalette...)
}

// NewPalette builds a palette from hex colour strings.
func NewPalette(hex ...string) (Palette, error) {
	p := make(Palette, 0, len(hex))
	for _, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

func mustPalette(hex ...string) Palette {
	p, err := NewPalette(hex...)
	if err != nil {
		panic(err)
	}
	return p
}

// At returns the colour for the i-th slice. An empty palette yields black.
func (p Palette) At(i int) RGB {
	if len(p) == 0 {
		return RGB{}
	}
	return p[i%len(p)]
}

// Len returns the number of colours.
func (p Palette) Len() int {
	return len(p)
}

// Package errimage renders error messages as small framed PNG images, so a
// failed chart still shows up where an image was expected.
package errimage

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	tabWidth   = 3
	frameWidth = 2
	textX      = 4
	textY      = 2
)

var (
	frameColor = color.RGBA{R: 0xff, A: 0xff}
	face       = basicfont.Face7x13
)

// Size returns the image size used for message.
func Size(message string) image.Point {
	lines := splitLines(message)
	charWidth, lineHeight := metrics()

	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return image.Pt(charWidth*longest+6, (lineHeight+1)*len(lines)+4)
}

// Render draws message in black on white inside a red frame. Tabs are
// expanded and each line of the message gets its own row.
func Render(message string) *image.RGBA {
	var (
		lines         = splitLines(message)
		size          = Size(message)
		_, lineHeight = metrics()
		ascent        = face.Metrics().Ascent.Ceil()
		w, h          = float64(size.X), float64(size.Y)
	)

	dc := gg.NewContext(size.X, size.Y)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(frameColor))
	dc.SetColor(color.White)
	dc.DrawRectangle(frameWidth, frameWidth, w-2*frameWidth, h-2*frameWidth)
	_ = dc.Fill()

	img := toRGBA(dc.Image())
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	y := textY
	for _, line := range lines {
		d.Dot = fixed.P(textX, y+ascent)
		d.DrawString(line)
		y += lineHeight + 1
	}
	return img
}

// Encode renders message and writes it to w as PNG.
func Encode(w io.Writer, message string) error {
	return png.Encode(w, Render(message))
}

func splitLines(message string) []string {
	message = strings.ReplaceAll(message, "\t", strings.Repeat(" ", tabWidth))
	return strings.Split(message, "\n")
}

func metrics() (charWidth, lineHeight int) {
	adv, _ := face.GlyphAdvance('0')
	return adv.Round(), face.Metrics().Height.Ceil()
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

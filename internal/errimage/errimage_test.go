package errimage

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    image.Point
	}{
		// 7x13 font: width 7*n+6, height 14*lines+4.
		{"single line", "oops", image.Pt(7*4+6, 14+4)},
		{"two lines", "a\nlonger", image.Pt(7*6+6, 28+4)},
		{"tab expands to three spaces", "\tx", image.Pt(7*4+6, 14+4)},
		{"empty", "", image.Pt(6, 14+4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Size(tt.message))
		})
	}
}

func TestRender(t *testing.T) {
	img := Render("unrecognized input\n\"hello\"")
	size := Size("unrecognized input\n\"hello\"")
	require.Equal(t, image.Rect(0, 0, size.X, size.Y), img.Bounds())

	red := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0xff), red.R)
	assert.Less(t, red.G, uint8(0x10))
	assert.Equal(t, uint8(0xff), red.A)

	right := img.RGBAAt(size.X-1, size.Y/2)
	assert.Equal(t, uint8(0xff), right.R)
	assert.Less(t, right.B, uint8(0x10))

	// The white body keeps a one pixel margin left of the text.
	body := img.RGBAAt(3, size.Y/2)
	assert.GreaterOrEqual(t, body.G, uint8(0xf0))

	dark := 0
	for y := 2; y < size.Y-2; y++ {
		for x := 4; x < size.X-2; x++ {
			if c := img.RGBAAt(x, y); c.R < 0x40 && c.G < 0x40 {
				dark++
			}
		}
	}
	assert.Positive(t, dark, "no text pixels drawn")
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "boom"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Size("boom"), img.Bounds().Size())
}

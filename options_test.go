package piechart

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

// TestNewRendererDefaults tests that NewRenderer uses the built-in configuration.
func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer()
	cfg := r.Config()

	if cfg.Palette.Len() != DefaultPalette().Len() {
		t.Errorf("palette length = %d, want %d", cfg.Palette.Len(), DefaultPalette().Len())
	}
	if cfg.Face != basicfont.Face7x13 {
		t.Error("face is not the 7x13 bitmap font")
	}
	if cfg.Measures != DefaultMeasures() {
		t.Errorf("measures = %+v, want %+v", cfg.Measures, DefaultMeasures())
	}
}

func TestWithPaletteCopies(t *testing.T) {
	p := Palette{{R: 1}, {G: 2}}
	r := NewRenderer(WithPalette(p))
	p[0] = RGB{B: 9}

	if got := r.Config().Palette.At(0); got != (RGB{R: 1}) {
		t.Errorf("palette[0] = %v after caller mutation, want {1 0 0}", got)
	}
}

func TestWithPaletteIgnoresEmpty(t *testing.T) {
	r := NewRenderer(WithPalette(nil))
	if r.Config().Palette.Len() != DefaultPalette().Len() {
		t.Error("empty palette replaced the default")
	}
}

func TestWithFontFaceIgnoresNil(t *testing.T) {
	r := NewRenderer(WithFontFace(nil))
	if r.Config().Face == nil {
		t.Fatal("nil face accepted")
	}
}

func TestConfigReturnsCopy(t *testing.T) {
	r := NewRenderer()
	cfg := r.Config()
	cfg.Palette[0] = RGB{}

	if r.Config().Palette.At(0) == (RGB{}) {
		t.Error("Config exposed the renderer's palette")
	}
}

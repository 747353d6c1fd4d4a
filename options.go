package piechart

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measures holds the spacing constants of the chart layout, in pixels.
type Measures struct {
	GraphPadding          int // space between components and the canvas border
	GraphSpacing          int // space between the pie and the legend
	LegendPadding         int // space between the legend border and its content
	LegendVerticalSpacing int // vertical space between legend rows
	LegendColorboxSpacing int // space between a colour box and its label
}

// DefaultMeasures returns the standard chart spacing.
func DefaultMeasures() Measures {
	return Measures{
		GraphPadding:          5,
		GraphSpacing:          5,
		LegendPadding:         2,
		LegendVerticalSpacing: 2,
		LegendColorboxSpacing: 2,
	}
}

// Config is the immutable configuration of a Renderer.
type Config struct {
	Palette  Palette
	Face     font.Face
	Measures Measures
}

// Option configures a Renderer during creation.
//
// Example:
//
//	r := piechart.NewRenderer(piechart.WithPalette(myPalette))
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Palette:  DefaultPalette(),
		Face:     basicfont.Face7x13,
		Measures: DefaultMeasures(),
	}
}

// WithPalette sets the slice colours. An empty palette is ignored.
func WithPalette(p Palette) Option {
	return func(c *Config) {
		if len(p) > 0 {
			c.Palette = append(Palette(nil), p...)
		}
	}
}

// WithFontFace sets the legend font. The face is measured as fixed-width:
// every character is assumed to advance as far as '0'.
func WithFontFace(f font.Face) Option {
	return func(c *Config) {
		if f != nil {
			c.Face = f
		}
	}
}

// WithMeasures overrides the layout spacing.
func WithMeasures(m Measures) Option {
	return func(c *Config) {
		c.Measures = m
	}
}

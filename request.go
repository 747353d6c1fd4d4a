package piechart

import (
	"errors"
	"fmt"
	"math"
)

// AutoSignificance asks Resolve to derive the number of displayed decimal
// places from the input values.
const AutoSignificance = -1

// Default canvas size used when a request does not name one.
const (
	DefaultWidth  = 340
	DefaultHeight = 300
)

var (
	// ErrInvalidSize is returned for a canvas width or height below 1.
	ErrInvalidSize = errors.New("piechart: invalid canvas size")

	// ErrInvalidValue is returned for negative, NaN or infinite slice values.
	ErrInvalidValue = errors.New("piechart: invalid slice value")
)

// Entry is one labelled value of the chart data.
type Entry struct {
	Label string
	Value float64
}

// Settings controls optional chart features.
type Settings struct {
	// ShowLegend draws the legend box next to or below the pie.
	ShowLegend bool

	// Significance is the number of decimal places shown in legend labels.
	// AutoSignificance (or any negative value) is replaced by Resolve.
	Significance int

	// SortDescending orders slices from the largest to the smallest value.
	SortDescending bool
}

// DefaultSettings returns the settings used when a request specifies none.
func DefaultSettings() Settings {
	return Settings{
		ShowLegend:   true,
		Significance: AutoSignificance,
	}
}

// Resolve returns s with the automatic significance replaced by the value
// detected from data.
func (s Settings) Resolve(data []Entry) Settings {
	if s.Significance >= 0 {
		return s
	}
	values := make([]float64, len(data))
	for i, e := range data {
		values[i] = e.Value
	}
	s.Significance = DetectSignificance(values)
	return s
}

// Request is everything needed to render one chart.
// Data keeps input order; entries are never merged, even when their
// display labels collide.
type Request struct {
	Width    int
	Height   int
	Title    string
	Data     []Entry
	Settings Settings
}

// NewRequest creates a request with default size and settings.
func NewRequest(data ...Entry) Request {
	return Request{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Data:     data,
		Settings: DefaultSettings(),
	}
}

// Validate checks that the request can be rendered.
func (r Request) Validate() error {
	if r.Width < 1 || r.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, r.Width, r.Height)
	}
	for _, e := range r.Data {
		if e.Value < 0 || math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return fmt.Errorf("%w: %q = %v", ErrInvalidValue, e.Label, e.Value)
		}
	}
	return nil
}

// Sum returns the total of all values.
func (r Request) Sum() float64 {
	var sum float64
	for _, e := range r.Data {
		sum += e.Value
	}
	return sum
}

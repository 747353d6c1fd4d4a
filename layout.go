package piechart

import (
	"image"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	fullCircle = 360.0

	// startAngle puts the first slice at 12 o'clock. Angles are in degrees,
	// 0 at 3 o'clock, increasing clockwise.
	startAngle = -90.0
)

// Slice is one wedge of the pie.
type Slice struct {
	Index        int // position of the entry in Request.Data
	Label        string
	DisplayLabel string // label followed by the formatted value in parentheses
	Value        float64
	Color        RGB
	StartAngle   float64
	EndAngle     float64
}

// Span returns the angular size of the slice in degrees.
func (s Slice) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// Drawn reports whether the slice occupies a part of the pie.
func (s Slice) Drawn() bool {
	return s.EndAngle > s.StartAngle
}

// Layout is the computed geometry of a chart.
type Layout struct {
	Width  int
	Height int

	Slices []Slice
	Sum    float64

	CharWidth  int
	LineHeight int
	Ascent     int

	ShowLegend   bool
	LegendX      int
	LegendY      int
	LegendWidth  int
	LegendHeight int
	ColorboxSize int

	PieSize  int
	CenterX  float64
	CenterY  float64
	Vertical bool // legend below the pie instead of to its right

	measures Measures
}

// Radius returns the pie radius.
func (l Layout) Radius() float64 {
	return float64(l.PieSize) / 2
}

// LegendRow returns the top-left corner of the colour box of the i-th
// legend row.
func (l Layout) LegendRow(i int) image.Point {
	m := l.measures
	return image.Pt(
		l.LegendX+m.LegendPadding,
		l.LegendY+m.LegendPadding+i*(m.LegendVerticalSpacing+l.LineHeight),
	)
}

// LabelPoint returns the top-left corner of the label text of the i-th
// legend row.
func (l Layout) LabelPoint(i int) image.Point {
	p := l.LegendRow(i)
	p.X += l.ColorboxSize + l.measures.LegendColorboxSpacing
	return p
}

// Layout computes slices, colours and geometry for req without drawing.
// The request is expected to be valid; see Request.Validate.
func (r *Renderer) Layout(req Request) Layout {
	var (
		m        = r.cfg.Measures
		settings = req.Settings.Resolve(req.Data)
		slices   = make([]Slice, len(req.Data))
	)
	for i, e := range req.Data {
		slices[i] = Slice{
			Index:        i,
			Label:        e.Label,
			DisplayLabel: displayLabel(e.Label, e.Value, settings.Significance),
			Value:        e.Value,
		}
	}
	if settings.SortDescending {
		sort.SliceStable(slices, func(a, b int) bool {
			return slices[a].Value > slices[b].Value
		})
	}

	longest := 0
	for i := range slices {
		slices[i].Color = r.cfg.Palette.At(i)
		if n := labelLength(slices[i].DisplayLabel); n > longest {
			longest = n
		}
	}

	sum := req.Sum()
	assignAngles(slices, sum)

	l := Layout{
		Width:      req.Width,
		Height:     req.Height,
		Slices:     slices,
		Sum:        sum,
		CharWidth:  r.charWidth,
		LineHeight: r.lineHeight,
		Ascent:     r.ascent,
		ShowLegend: settings.ShowLegend && len(slices) > 0,
		measures:   m,
	}

	if l.ShowLegend {
		l.ColorboxSize = l.LineHeight - 1
		l.LegendWidth = 2*m.LegendPadding + l.ColorboxSize + m.LegendColorboxSpacing + l.CharWidth*longest
		l.LegendHeight = 2*m.LegendPadding + len(slices)*(m.LegendVerticalSpacing+l.LineHeight)

		horz := min(
			req.Width-2*m.GraphPadding-m.GraphSpacing-l.LegendWidth,
			req.Height-2*m.GraphPadding,
		)
		vert := min(
			req.Height-2*m.GraphPadding-m.GraphSpacing-l.LegendHeight,
			req.Width-2*m.GraphPadding,
		)
		l.PieSize = max(horz, vert)
		l.Vertical = vert > horz
	} else {
		l.PieSize = min(req.Width-2*m.GraphPadding, req.Height-2*m.GraphPadding)
	}

	if l.PieSize < 0 {
		Logger().Warn("chart does not fit canvas",
			"width", req.Width, "height", req.Height, "pie", l.PieSize)
		l.PieSize = 0
	}

	l.CenterX = float64(m.GraphPadding) + float64(l.PieSize)/2
	l.CenterY = float64(m.GraphPadding) + float64(l.PieSize)/2

	if l.Vertical {
		l.LegendX = m.GraphPadding
		l.LegendY = m.GraphPadding + l.PieSize + m.GraphSpacing
	} else {
		l.LegendX = m.GraphPadding + l.PieSize + m.GraphSpacing
		l.LegendY = m.GraphPadding
	}

	Logger().Debug("chart layout",
		"width", l.Width, "height", l.Height,
		"slices", len(l.Slices), "sum", l.Sum,
		"pie", l.PieSize, "vertical", l.Vertical,
		"legend_w", l.LegendWidth, "legend_h", l.LegendHeight)

	return l
}

// assignAngles walks slices in order from 12 o'clock. Slices without
// value keep a zero span and do not advance the running angle.
func assignAngles(slices []Slice, sum float64) {
	angle := startAngle
	last := -1
	for i := range slices {
		slices[i].StartAngle = angle
		if sum > 0 && slices[i].Value > 0 {
			angle += slices[i].Value / sum * fullCircle
			last = i
		}
		slices[i].EndAngle = angle
	}
	// Absorb rounding drift so the drawn slices close the circle exactly.
	if last >= 0 {
		slices[last].EndAngle = startAngle + fullCircle
		for i := last + 1; i < len(slices); i++ {
			slices[i].StartAngle = slices[last].EndAngle
			slices[i].EndAngle = slices[last].EndAngle
		}
	}
}

func displayLabel(label string, value float64, significance int) string {
	return label + " (" + FormatValue(value, significance) + ")"
}

// labelLength counts the characters a label occupies in a fixed-width font.
func labelLength(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

package piechart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const deg2rad = math.Pi / 180

var (
	legendBackground = color.White
	legendForeground = color.Black
)

// Renderer draws pie charts. A Renderer is immutable after creation and
// may be shared by concurrent requests; every call draws on its own canvas.
type Renderer struct {
	cfg Config

	charWidth  int
	lineHeight int
	ascent     int
}

// NewRenderer creates a renderer with the default palette, the 7x13
// bitmap font and the default measures, adjusted by opts.
func NewRenderer(opts ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics := cfg.Face.Metrics()
	adv, ok := cfg.Face.GlyphAdvance('0')
	if !ok {
		adv = font.MeasureString(cfg.Face, "0")
	}

	return &Renderer{
		cfg:        cfg,
		charWidth:  adv.Round(),
		lineHeight: metrics.Height.Ceil(),
		ascent:     metrics.Ascent.Ceil(),
	}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	cfg := r.cfg
	cfg.Palette = append(Palette(nil), r.cfg.Palette...)
	return cfg
}

// Render draws the chart described by req. The canvas starts fully
// transparent; pixels the chart does not touch stay transparent.
func (r *Renderer) Render(req Request) (*image.RGBA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	l := r.Layout(req)

	dc := gg.NewContext(req.Width, req.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.Transparent)

	if err := drawPie(dc, l); err != nil {
		return nil, fmt.Errorf("piechart: draw pie: %w", err)
	}
	if l.ShowLegend {
		if err := drawLegendFrame(dc, l); err != nil {
			return nil, fmt.Errorf("piechart: draw legend: %w", err)
		}
	}

	img := toRGBA(dc.Image())
	if l.ShowLegend {
		r.drawLegendText(img, l)
	}
	return img, nil
}

// EncodePNG renders req and writes it to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, req Request) error {
	img, err := r.Render(req)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("piechart: encode png: %w", err)
	}
	return nil
}

func drawPie(dc *gg.Context, l Layout) error {
	if l.PieSize <= 0 || l.Sum <= 0 {
		return nil
	}
	radius := l.Radius()
	for _, s := range l.Slices {
		if !s.Drawn() {
			continue
		}
		dc.SetColor(s.Color)
		if err := drawWedge(dc, l.CenterX, l.CenterY, radius, s.StartAngle*deg2rad, s.EndAngle*deg2rad); err != nil {
			return err
		}
	}
	return nil
}

// drawWedge fills the circular sector between angles a1 and a2 (radians).
func drawWedge(dc *gg.Context, cx, cy, radius, a1, a2 float64) error {
	dc.MoveTo(cx, cy)
	dc.LineTo(cx+radius*math.Cos(a1), cy+radius*math.Sin(a1))
	dc.DrawArc(cx, cy, radius, a1, a2)
	dc.ClosePath()
	return dc.Fill()
}

func drawLegendFrame(dc *gg.Context, l Layout) error {
	x, y := float64(l.LegendX), float64(l.LegendY)
	w, h := float64(l.LegendWidth), float64(l.LegendHeight)

	dc.SetColor(legendBackground)
	dc.DrawRectangle(x, y, w+1, h+1)
	if err := dc.Fill(); err != nil {
		return err
	}

	dc.SetColor(legendForeground)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x+0.5, y+0.5, w, h)
	if err := dc.Stroke(); err != nil {
		return err
	}

	box := float64(l.ColorboxSize + 1)
	for i, s := range l.Slices {
		p := l.LegendRow(i)
		dc.SetColor(s.Color)
		dc.DrawRectangle(float64(p.X), float64(p.Y), box, box)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawLegendText(img *image.RGBA, l Layout) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(legendForeground),
		Face: r.cfg.Face,
	}
	for i, s := range l.Slices {
		p := l.LabelPoint(i)
		d.Dot = fixed.P(p.X, p.Y+l.Ascent)
		d.DrawString(s.DisplayLabel)
	}
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

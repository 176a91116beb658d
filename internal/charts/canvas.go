package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no values to plot")

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when a caller passes a zero Size.
var DefaultSize = Size{Width: 640, Height: 420}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// canvas draws primitives on a go-chart SVG renderer for chart types the
// library has no builder for.
type canvas struct {
	r    chart.Renderer
	size Size
}

func newCanvas(size Size) (*canvas, error) {
	r, err := chart.SVG(size.Width, size.Height)
	if err != nil {
		return nil, fmt.Errorf("svg renderer: %w", err)
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(f)
	return &canvas{r: r, size: size}, nil
}

func (c *canvas) rect(x0, y0, x1, y1 int, fill, stroke drawing.Color, strokeWidth float64) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(strokeWidth)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.LineTo(x0, y0)
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) line(x0, y0, x1, y1 int, color drawing.Color, width float64) {
	c.r.SetFillColor(transparent)
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func (c *canvas) dot(x, y int, radius float64, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(fill)
	c.r.SetStrokeWidth(1)
	c.r.Circle(radius, x, y)
}

// text draws s with its baseline at y, anchored at x per a. s is plain text;
// it is escaped before it reaches the SVG.
func (c *canvas) text(s string, x, y int, size float64, color drawing.Color, a align) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(color)
	switch a {
	case alignCenter:
		x -= c.r.MeasureText(s).Width() / 2
	case alignRight:
		x -= c.r.MeasureText(s).Width()
	}
	c.r.Text(svgText(s), x, y)
}

// rotatedText draws s rotated clockwise by deg degrees around (x, y).
func (c *canvas) rotatedText(s string, x, y int, size float64, color drawing.Color, deg float64) {
	c.r.SetTextRotation(deg * math.Pi / 180)
	c.text(s, x, y, size, color, alignLeft)
	c.r.ClearTextRotation()
}

func (c *canvas) textWidth(s string, size float64) int {
	c.r.SetFontSize(size)
	return c.r.MeasureText(s).Width()
}

func (c *canvas) title(s string) {
	c.text(s, c.size.Width/2, 24, 14, textColor, alignCenter)
}

func (c *canvas) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

// linearScale maps a data interval onto a pixel interval.
type linearScale struct {
	d0, d1 float64
	p0, p1 int
}

func (s linearScale) px(v float64) int {
	if s.d1 == s.d0 {
		return (s.p0 + s.p1) / 2
	}
	return s.p0 + int(math.Round((v-s.d0)/(s.d1-s.d0)*float64(s.p1-s.p0)))
}

// paddedRange returns [lo, hi] of vals widened by frac on each side, or by
// 1 when the values are all equal.
func paddedRange(vals []float64, frac float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * frac
	return lo - pad, hi + pad
}

// svgText escapes plain text for go-chart, which writes text into SVG as is.
func svgText(s string) string { return html.EscapeString(s) }

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

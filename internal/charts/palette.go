package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func rgb(r, g, b uint8) drawing.Color { return drawing.Color{R: r, G: g, B: b, A: 255} }

var (
	transparent = drawing.Color{}
	white       = rgb(255, 255, 255)
	textColor   = rgb(42, 63, 95)
	axisColor   = rgb(160, 160, 160)
	gridColor   = rgb(232, 232, 232)
	nanColor    = rgb(200, 200, 200)

	lineColor = rgb(0, 204, 150)  // #00CC96
	boxColor  = rgb(99, 110, 250) // #636EFA
	histColor = rgb(239, 85, 59)  // #EF553B
)

// pastel is the qualitative sequence used for pie slices.
var pastel = []drawing.Color{
	rgb(102, 197, 204), rgb(246, 207, 113), rgb(248, 156, 116), rgb(220, 176, 242),
	rgb(135, 197, 95), rgb(158, 185, 243), rgb(254, 136, 177), rgb(201, 219, 116),
	rgb(139, 224, 164), rgb(180, 151, 231), rgb(179, 179, 179),
}

// seriesPalette overrides the series colors of go-chart's default palette.
type seriesPalette struct {
	chart.ColorPalette
	colors []drawing.Color
}

func (p seriesPalette) GetSeriesColor(index int) drawing.Color {
	return p.colors[index%len(p.colors)]
}

// teal runs from light to dark; bar color intensity follows the count.
var teal = []drawing.Color{
	rgb(209, 238, 234), rgb(168, 219, 217), rgb(133, 196, 201), rgb(104, 171, 184),
	rgb(79, 144, 166), rgb(59, 115, 143), rgb(42, 86, 116),
}

// coolwarm is a diverging blue-grey-red scale over [-1, 1].
var coolwarm = []drawing.Color{
	rgb(59, 76, 192), rgb(98, 130, 234), rgb(141, 176, 254), rgb(184, 208, 249),
	rgb(221, 221, 221), rgb(245, 196, 173), rgb(244, 154, 123), rgb(222, 96, 77),
	rgb(180, 4, 38),
}

// sample interpolates scale at t in [0, 1].
func sample(scale []drawing.Color, t float64) drawing.Color {
	if math.IsNaN(t) {
		return nanColor
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(scale)-1)
	i := int(math.Floor(pos))
	if i >= len(scale)-1 {
		return scale[len(scale)-1]
	}
	return lerp(scale[i], scale[i+1], pos-float64(i))
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t)) }
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func withAlpha(c drawing.Color, a uint8) drawing.Color {
	c.A = a
	return c
}

// luminance is the perceived brightness of c in [0, 1].
func luminance(c drawing.Color) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

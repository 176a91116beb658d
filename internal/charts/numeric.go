package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/KaramelBytes/dasbor/internal/analysis"
	"github.com/wcharczuk/go-chart/v2"
)

// Line plots values against their row index with point markers. NaN and
// infinite values break the line.
func Line(column string, values []float64, size Size) ([]byte, error) {
	size = size.orDefault()
	style := chart.Style{StrokeColor: lineColor, StrokeWidth: 2, DotColor: lineColor, DotWidth: 3}

	var series []chart.Series
	var xs, ys []float64
	flush := func() {
		if len(xs) > 0 {
			series = append(series, chart.ContinuousSeries{Name: svgText(column), Style: style, XValues: xs, YValues: ys})
		}
		xs, ys = nil, nil
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			flush()
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	flush()
	if len(series) == 0 {
		return nil, ErrNoData
	}

	lo, hi := paddedRange(values, 0.05)
	graph := chart.Chart{
		Title:      svgText("Trend of " + column),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "index",
			Range:          &chart.ContinuousRange{Min: 0, Max: math.Max(float64(len(values)-1), 1)},
			ValueFormatter: chart.IntValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  svgText(column),
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render line: %w", err)
	}
	return buf.Bytes(), nil
}

// Histogram renders bins as adjacent bars; every fourth bin edge is labelled.
func Histogram(column string, bins []analysis.Bin, size Size) ([]byte, error) {
	if len(bins) == 0 {
		return nil, ErrNoData
	}
	size = size.orDefault()
	peak := 0
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		peak = max(peak, b.Count)
		label := ""
		if i%4 == 0 {
			label = formatTick(b.Lo)
		}
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: label,
			Style: chart.Style{FillColor: histColor, StrokeColor: white, StrokeWidth: 1},
		}
	}
	if peak == 0 {
		return nil, ErrNoData
	}
	barWidth := max((size.Width-120)/len(bins)-2, 2)
	graph := chart.BarChart{
		Title:      svgText("Distribution of " + column),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: 2,
		YAxis: chart.YAxis{
			Name:           "count",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(peak)},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// Box draws a vertical box plot of values with every value overlaid as a
// jittered point. NaN and infinite values are ignored.
func Box(column string, values []float64, size Size) ([]byte, error) {
	present := analysis.Finite(values)
	st, ok := analysis.Box(present)
	if !ok {
		return nil, ErrNoData
	}
	size = size.orDefault()
	c, err := newCanvas(size)
	if err != nil {
		return nil, err
	}
	c.title("Distribution of " + column)

	const fontSize = 10.0
	top, bottom, left, right := 44, 30, 64, 24
	lo, hi := paddedRange(present, 0.05)
	y := linearScale{d0: lo, d1: hi, p0: size.Height - bottom, p1: top}
	for i := 0; i <= 4; i++ {
		t := lo + (hi-lo)*float64(i)/4
		py := y.px(t)
		c.line(left, py, size.Width-right, py, gridColor, 1)
		c.text(formatTick(t), left-6, py+4, fontSize, textColor, alignRight)
	}
	c.line(left, top, left, size.Height-bottom, axisColor, 1)
	c.text(column, (left+size.Width-right)/2, size.Height-8, fontSize, textColor, alignCenter)

	cx := (left + size.Width - right) / 2
	half := min((size.Width-left-right)/6, 70)
	c.line(cx, y.px(st.LowerWhisker), cx, y.px(st.Q1), boxColor, 1.5)
	c.line(cx, y.px(st.Q3), cx, y.px(st.UpperWhisker), boxColor, 1.5)
	c.line(cx-half/2, y.px(st.LowerWhisker), cx+half/2, y.px(st.LowerWhisker), boxColor, 1.5)
	c.line(cx-half/2, y.px(st.UpperWhisker), cx+half/2, y.px(st.UpperWhisker), boxColor, 1.5)
	q3 := y.px(st.Q3)
	q1 := y.px(st.Q1)
	if q1 == q3 {
		q1++
	}
	c.rect(cx-half, q3, cx+half, q1, withAlpha(boxColor, 70), boxColor, 1.5)
	c.line(cx-half, y.px(st.Median), cx+half, y.px(st.Median), boxColor, 2.5)

	for i, v := range present {
		c.dot(cx+jitter(i, half), y.px(v), 2.5, withAlpha(boxColor, 150))
	}
	return c.bytes()
}

// jitter spreads points horizontally within ±width px, deterministically.
func jitter(i, width int) int {
	if width <= 0 {
		return 0
	}
	return (i*37)%(2*width+1) - width
}

package charts

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/dasbor/internal/analysis"
	"github.com/wcharczuk/go-chart/v2"
)

// Pie renders value counts as a donut of proportions.
func Pie(column string, counts []analysis.CategoryCount, size Size) ([]byte, error) {
	total := analysis.TotalCount(counts)
	if total == 0 {
		return nil, ErrNoData
	}
	size = size.orDefault()
	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		share := float64(c.Count) * 100 / float64(total)
		values = append(values, chart.Value{
			Value: float64(c.Count),
			Label: svgText(fmt.Sprintf("%s (%.1f%%)", truncateLabel(c.Value, 20), share)),
		})
	}
	pie := chart.DonutChart{
		Title:        svgText("Distribution of " + column),
		Width:        size.Width,
		Height:       size.Height,
		ColorPalette: seriesPalette{ColorPalette: chart.DefaultColorPalette, colors: pastel},
		Values:       values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}

// HorizontalBar renders value counts as horizontal bars, first count on top,
// shaded darker as the count grows.
func HorizontalBar(column string, counts []analysis.CategoryCount, size Size) ([]byte, error) {
	if analysis.TotalCount(counts) == 0 {
		return nil, ErrNoData
	}
	size = size.orDefault()
	c, err := newCanvas(size)
	if err != nil {
		return nil, err
	}
	c.title("Frequency of " + column)

	const fontSize = 10.0
	labels := make([]string, len(counts))
	labelW := 0
	lo, hi := counts[0].Count, counts[0].Count
	for i, cc := range counts {
		labels[i] = truncateLabel(cc.Value, 24)
		labelW = max(labelW, c.textWidth(labels[i], fontSize))
		lo = min(lo, cc.Count)
		hi = max(hi, cc.Count)
	}
	left := min(labelW+16, size.Width/3)
	top, right, bottom := 44, 48, 36
	x := linearScale{d0: 0, d1: float64(hi), p0: left, p1: size.Width - right}
	rowH := float64(size.Height-top-bottom) / float64(len(counts))

	for _, t := range []float64{0, float64(hi) / 2, float64(hi)} {
		px := x.px(t)
		c.line(px, top, px, size.Height-bottom, gridColor, 1)
		c.text(formatTick(t), px, size.Height-bottom+14, fontSize, textColor, alignCenter)
	}
	c.text("count", (left+size.Width-right)/2, size.Height-6, fontSize, textColor, alignCenter)

	for i, cc := range counts {
		t := 1.0
		if hi > lo {
			t = float64(cc.Count-lo) / float64(hi-lo)
		}
		fill := sample(teal, t)
		y0 := top + int(float64(i)*rowH+rowH*0.15)
		y1 := top + int(float64(i+1)*rowH-rowH*0.15)
		if y1 <= y0 {
			y1 = y0 + 1
		}
		c.rect(left, y0, x.px(float64(cc.Count)), y1, fill, fill, 1)
		mid := (y0+y1)/2 + 4
		c.text(labels[i], left-6, mid, fontSize, textColor, alignRight)
		c.text(fmt.Sprint(cc.Count), x.px(float64(cc.Count))+4, mid, fontSize, textColor, alignLeft)
	}
	c.line(left, top, left, size.Height-bottom, axisColor, 1)
	return c.bytes()
}

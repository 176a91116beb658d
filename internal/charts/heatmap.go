package charts

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/dasbor/internal/analysis"
)

// Heatmap renders a correlation matrix as square cells annotated with
// two-decimal coefficients, colored on a diverging scale fixed to [-1, 1].
// NaN coefficients are grey and read "nan".
func Heatmap(m *analysis.CorrMatrix, size Size) ([]byte, error) {
	if m == nil || len(m.Columns) == 0 {
		return nil, ErrNoData
	}
	size = size.orDefault()
	c, err := newCanvas(size)
	if err != nil {
		return nil, err
	}
	c.title("Correlation between numeric columns")

	const fontSize = 10.0
	n := len(m.Columns)
	labels := make([]string, n)
	labelW := 0
	for i, name := range m.Columns {
		labels[i] = truncateLabel(name, 18)
		labelW = max(labelW, c.textWidth(labels[i], fontSize))
	}
	top := 44
	left := labelW + 12
	barW := 16
	right := barW + 48
	// rotated column labels hang below the grid
	bottom := int(float64(labelW)*math.Sin(math.Pi/4)) + 20

	cell := min((size.Width-left-right)/n, (size.Height-top-bottom)/n)
	if cell < 4 {
		cell = 4
	}
	annotSize := math.Max(6, math.Min(11, float64(cell)/4))

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := m.Values[i][j]
			fill := sample(coolwarm, (r+1)/2)
			x0, y0 := left+j*cell, top+i*cell
			c.rect(x0, y0, x0+cell, y0+cell, fill, white, 0.5)
			label := "nan"
			if !math.IsNaN(r) {
				label = fmt.Sprintf("%.2f", r)
			}
			ink := textColor
			if luminance(fill) < 0.5 {
				ink = white
			}
			c.text(label, x0+cell/2, y0+cell/2+int(annotSize/2), annotSize, ink, alignCenter)
		}
		c.text(labels[i], left-6, top+i*cell+cell/2+4, fontSize, textColor, alignRight)
		c.rotatedText(labels[i], left+i*cell+cell/2, top+n*cell+10, fontSize, textColor, 45)
	}

	// color bar
	bx := left + n*cell + 16
	gridH := n * cell
	const steps = 40
	for s := 0; s < steps; s++ {
		t0 := float64(s) / steps
		y0 := top + gridH - int(float64(gridH)*(t0+1.0/steps))
		y1 := top + gridH - int(float64(gridH)*t0)
		fill := sample(coolwarm, t0+0.5/steps)
		c.rect(bx, y0, bx+barW, y1, fill, fill, 0)
	}
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		py := top + gridH - int(float64(gridH)*(v+1)/2)
		c.line(bx+barW, py, bx+barW+4, py, axisColor, 1)
		c.text(formatTick(v), bx+barW+6, py+4, fontSize, textColor, alignLeft)
	}
	return c.bytes()
}

package charts

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/dasbor/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cityCounts = []analysis.CategoryCount{
	{Value: "Bandung", Count: 3},
	{Value: "Jakarta", Count: 2},
	{Value: "Depok", Count: 1},
}

func requireSVG(t *testing.T, b []byte, err error) string {
	t.Helper()
	require.NoError(t, err)
	s := string(b)
	require.True(t, strings.HasPrefix(strings.TrimSpace(s), "<svg"), "not an svg document: %.80s", s)
	require.Contains(t, s, "</svg>")
	return s
}

// requireWellFormed decodes the whole document as XML.
func requireWellFormed(t *testing.T, s string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestPie(t *testing.T) {
	b, err := Pie("city", cityCounts, Size{})
	s := requireSVG(t, b, err)
	assert.Contains(t, s, "Bandung (50.0%)")

	_, err = Pie("city", nil, Size{})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestHorizontalBar(t *testing.T) {
	b, err := HorizontalBar("city", cityCounts, Size{Width: 500, Height: 300})
	s := requireSVG(t, b, err)
	assert.Contains(t, s, "Frequency of city")
	assert.Contains(t, s, "Jakarta")
	assert.Less(t, strings.Index(s, "Bandung"), strings.Index(s, "Depok"), "aggregation order is kept")

	_, err = HorizontalBar("city", nil, Size{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLine(t *testing.T) {
	b, err := Line("age", []float64{19, 21, math.NaN(), 22, 20}, Size{})
	requireSVG(t, b, err)
	b, err = Line("age", []float64{7}, Size{})
	requireSVG(t, b, err)
	b, err = Line("age", []float64{3, math.Inf(1), 4, math.Inf(-1)}, Size{})
	assert.NotContains(t, requireSVG(t, b, err), "NaN")

	_, err = Line("age", []float64{math.NaN(), math.Inf(1)}, Size{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistogram(t *testing.T) {
	bins := analysis.Histogram([]float64{1, 2, 2, 3, 9}, analysis.HistogramBins)
	b, err := Histogram("score", bins, Size{})
	requireSVG(t, b, err)

	bins = analysis.Histogram([]float64{1, math.Inf(1), 2, math.Inf(-1)}, analysis.HistogramBins)
	b, err = Histogram("score", bins, Size{})
	assert.NotContains(t, requireSVG(t, b, err), "NaN")

	_, err = Histogram("score", nil, Size{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBox(t *testing.T) {
	b, err := Box("age", []float64{1, 2, 3, 4, math.NaN(), 100, math.Inf(1)}, Size{})
	s := requireSVG(t, b, err)
	assert.Contains(t, s, "Distribution of age")
	assert.Equal(t, 5, strings.Count(s, "<circle"), "one point per finite value")

	_, err = Box("age", []float64{math.NaN(), math.Inf(-1)}, Size{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHeatmap(t *testing.T) {
	m := &analysis.CorrMatrix{
		Columns: []string{"a", "b", "c"},
		Values: [][]float64{
			{1, 0.871, math.NaN()},
			{0.871, 1, -0.25},
			{math.NaN(), -0.25, 1},
		},
	}
	b, err := Heatmap(m, Size{})
	s := requireSVG(t, b, err)
	assert.Contains(t, s, "0.87")
	assert.Contains(t, s, "-0.25")
	assert.Contains(t, s, "1.00")
	assert.Contains(t, s, "nan")

	_, err = Heatmap(nil, Size{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSample(t *testing.T) {
	assert.Equal(t, coolwarm[0], sample(coolwarm, 0))
	assert.Equal(t, coolwarm[4], sample(coolwarm, 0.5), "zero sits at the center")
	assert.Equal(t, coolwarm[len(coolwarm)-1], sample(coolwarm, 1))
	assert.Equal(t, nanColor, sample(coolwarm, math.NaN()))
}

func TestJitterStaysWithinWidth(t *testing.T) {
	for i := 0; i < 200; i++ {
		j := jitter(i, 30)
		assert.GreaterOrEqual(t, j, -30)
		assert.LessOrEqual(t, j, 30)
	}
	assert.Equal(t, 0, jitter(5, 0))
}

func TestChartTextIsEscaped(t *testing.T) {
	const column = `dept "R&D" <x>`
	counts := []analysis.CategoryCount{
		{Value: "<script>alert(1)</script>", Count: 2},
		{Value: "R&D", Count: 1},
		{Value: `say "hi"`, Count: 1},
	}
	values := []float64{1, 2, 3, 5}
	m := &analysis.CorrMatrix{
		Columns: []string{column, "<b>"},
		Values:  [][]float64{{1, 0.5}, {0.5, 1}},
	}

	render := map[string]func() ([]byte, error){
		"pie":     func() ([]byte, error) { return Pie(column, counts, Size{}) },
		"bar":     func() ([]byte, error) { return HorizontalBar(column, counts, Size{}) },
		"line":    func() ([]byte, error) { return Line(column, values, Size{}) },
		"box":     func() ([]byte, error) { return Box(column, values, Size{}) },
		"heatmap": func() ([]byte, error) { return Heatmap(m, Size{}) },
		"histogram": func() ([]byte, error) {
			return Histogram(column, analysis.Histogram(values, analysis.HistogramBins), Size{})
		},
	}
	for name, fn := range render {
		t.Run(name, func(t *testing.T) {
			b, err := fn()
			s := requireSVG(t, b, err)
			requireWellFormed(t, s)
			assert.NotContains(t, s, "<script")
			assert.NotContains(t, s, "<x>")
			assert.NotContains(t, s, "R&D")
			assert.Contains(t, s, "R&amp;D")
		})
	}

	b, err := HorizontalBar("city", counts, Size{})
	s := requireSVG(t, b, err)
	assert.Contains(t, s, "&lt;script&gt;")
	assert.Contains(t, s, "&#34;hi&#34;")
}

package dashboard

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strconv"

	"github.com/KaramelBytes/dasbor/internal/analysis"
	"github.com/KaramelBytes/dasbor/internal/charts"
)

// Panel keys; the dropdown panels double as query parameter names.
const (
	PanelPie         = "pie"
	PanelBar         = "bar"
	PanelLine        = "line"
	PanelBox         = "box"
	PanelHistogram   = "hist"
	PanelCorrelation = "corr"
)

var (
	ErrUnknownPanel  = errors.New("unknown panel")
	ErrInvalidColumn = errors.New("column not available for panel")
)

// Warnings shown in place of a table or chart.
const (
	warnNoNumericStats = "There are no numeric columns to describe."
	warnNoCategorical  = "No categorical columns found."
	warnNoNumeric      = "No numeric columns found."
	warnCorrelation    = "Not enough numeric columns to show correlations."
)

// Selection maps a dropdown panel key to the column chosen for it.
type Selection map[string]string

// SelectionFromQuery reads the dropdown panel keys from q.
func SelectionFromQuery(q url.Values) Selection {
	sel := Selection{}
	for _, p := range dropdownPanels {
		if v := q.Get(p.key); v != "" {
			sel[p.key] = v
		}
	}
	return sel
}

type panelSpec struct {
	key         string
	title       string
	categorical bool
}

// dropdownPanels are the panels driven by a column dropdown, in page order.
var dropdownPanels = []panelSpec{
	{PanelPie, "Categorical distribution (pie chart)", true},
	{PanelBar, "Categorical frequency (bar chart)", true},
	{PanelLine, "Numeric trend (line chart)", false},
	{PanelBox, "Value distribution (box plot)", false},
	{PanelHistogram, "Data distribution (histogram)", false},
}

func lookupPanel(key string) (panelSpec, bool) {
	for _, p := range dropdownPanels {
		if p.key == key {
			return p, true
		}
	}
	return panelSpec{}, false
}

// SummaryView is the "Data & Statistics" tab.
type SummaryView struct {
	Columns      []string
	Head         [][]string
	StatNames    []string
	Stats        [][]string // one row per StatNames entry, one cell per numeric column
	StatsWarning string
	Numeric      []string
	Categorical  []string
	Other        []string
}

// BuildSummary assembles the preview rows, descriptive statistics and column
// lists of t.
func BuildSummary(t *analysis.Table, cls analysis.Classification, headRows int) (*SummaryView, error) {
	v := &SummaryView{
		Columns:     t.ColumnNames(),
		Head:        t.Head(headRows),
		Numeric:     cls.Numeric,
		Categorical: cls.Categorical,
		Other:       cls.Other,
	}
	if len(cls.Numeric) == 0 {
		v.StatsWarning = warnNoNumericStats
		return v, nil
	}
	d, err := analysis.Describe(t, cls.Numeric)
	if err != nil {
		return nil, err
	}
	v.StatNames = analysis.StatNames
	v.Stats = make([][]string, len(analysis.StatNames))
	for i := range v.Stats {
		v.Stats[i] = make([]string, len(d.Columns))
	}
	for j, cs := range d.Columns {
		for i, val := range cs.Values() {
			v.Stats[i][j] = FormatStat(val)
		}
	}
	return v, nil
}

// FormatStat renders a statistic with up to six decimals and no trailing zeros.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// Metric is one summary card.
type Metric struct {
	Label string
	Value int
}

// Metrics returns the summary cards shown above the charts.
func Metrics(t *analysis.Table, cls analysis.Classification) []Metric {
	return []Metric{
		{Label: "Rows", Value: t.Rows()},
		{Label: "Numeric columns", Value: len(cls.Numeric)},
		{Label: "Categorical columns", Value: len(cls.Categorical)},
		{Label: "Missing cells", Value: t.MissingCells()},
	}
}

// Panel is one chart panel of the "Visualization" tab. Exactly one of
// Warning and Chart is set.
type Panel struct {
	Key      string
	Title    string
	Options  []string
	Selected string
	Warning  string
	Chart    template.HTML
}

// VisualizationView is the "Visualization" tab.
type VisualizationView struct {
	Metrics     []Metric
	Panels      []Panel
	Correlation Panel
}

// BuildVisualization assembles the metric cards and every chart panel. Each
// panel reads only its own entry of sel.
func BuildVisualization(t *analysis.Table, cls analysis.Classification, sel Selection, size charts.Size) *VisualizationView {
	v := &VisualizationView{Metrics: Metrics(t, cls)}
	for _, spec := range dropdownPanels {
		p := Panel{Key: spec.key, Title: spec.title, Options: optionsFor(spec, cls)}
		p.Selected = resolveColumn(p.Options, sel[spec.key])
		svg, warning, err := ChartFor(spec.key, t, cls, p.Selected, size)
		p.Warning = panelWarning(warning, err)
		if p.Warning == "" {
			p.Chart = template.HTML(svg)
		}
		v.Panels = append(v.Panels, p)
	}

	corr := Panel{Key: PanelCorrelation, Title: "Correlation matrix (heatmap)"}
	svg, warning, err := ChartFor(PanelCorrelation, t, cls, "", heatmapSize(size, len(cls.Numeric)))
	corr.Warning = panelWarning(warning, err)
	if corr.Warning == "" {
		corr.Chart = template.HTML(svg)
	}
	v.Correlation = corr
	return v
}

func panelWarning(warning string, err error) string {
	if err != nil {
		return fmt.Sprintf("Chart could not be rendered: %v", err)
	}
	return warning
}

// heatmapSize grows the chart for wide matrices so cells stay legible.
func heatmapSize(size charts.Size, n int) charts.Size {
	if size.Width <= 0 || size.Height <= 0 {
		size = charts.DefaultSize
	}
	side := max(size.Height, min(60*n+200, 1000))
	return charts.Size{Width: side + 80, Height: side}
}

func optionsFor(spec panelSpec, cls analysis.Classification) []string {
	if spec.categorical {
		return cls.Categorical
	}
	return cls.Numeric
}

// resolveColumn returns want when it is an option, else the first option.
func resolveColumn(options []string, want string) string {
	for _, o := range options {
		if o == want {
			return o
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// ChartFor renders one panel's chart for column. A non-empty warning marks a
// degraded panel and comes with a nil chart. An empty column selects the
// panel's first option; the correlation panel ignores column.
func ChartFor(key string, t *analysis.Table, cls analysis.Classification, column string, size charts.Size) ([]byte, string, error) {
	if key == PanelCorrelation {
		if len(cls.Numeric) < 2 {
			return nil, warnCorrelation, nil
		}
		m, err := analysis.Correlation(t, cls.Numeric)
		if err != nil {
			return nil, "", err
		}
		svg, err := charts.Heatmap(m, size)
		return svg, "", err
	}

	spec, ok := lookupPanel(key)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownPanel, key)
	}
	options := optionsFor(spec, cls)
	if len(options) == 0 {
		if spec.categorical {
			return nil, warnNoCategorical, nil
		}
		return nil, warnNoNumeric, nil
	}
	if column == "" {
		column = options[0]
	}
	if resolveColumn(options, column) != column {
		return nil, "", fmt.Errorf("%w: %q for %s", ErrInvalidColumn, column, key)
	}
	col, _ := t.Column(column)

	var svg []byte
	var err error
	switch key {
	case PanelPie:
		svg, err = charts.Pie(column, analysis.ValueCounts(col), size)
	case PanelBar:
		svg, err = charts.HorizontalBar(column, analysis.ValueCounts(col), size)
	case PanelLine:
		svg, err = charts.Line(column, rowValues(col), size)
	case PanelBox:
		svg, err = charts.Box(column, col.Floats(), size)
	case PanelHistogram:
		svg, err = charts.Histogram(column, analysis.Histogram(col.Floats(), analysis.HistogramBins), size)
	}
	if errors.Is(err, charts.ErrNoData) {
		return nil, fmt.Sprintf("Column %q has no values to plot.", column), nil
	}
	return svg, "", err
}

// rowValues returns every row of a numeric column, NaN where missing.
func rowValues(c *analysis.Column) []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i], _ = c.Float(i)
	}
	return out
}

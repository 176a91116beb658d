package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// StatNames labels the rows of a Description, in ColumnStats.Values order.
var StatNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// ColumnStats holds descriptive statistics of one numeric column.
// Missing cells are skipped; fields other than Count are NaN when Count is 0,
// and Std is NaN when Count < 2.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Values returns the statistics in StatNames order.
func (s ColumnStats) Values() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

// Description is the per-column statistics table for a set of numeric columns.
type Description struct {
	Columns []ColumnStats
}

// Describe computes statistics for each named numeric column, in order.
func Describe(t *Table, columns []string) (*Description, error) {
	d := &Description{Columns: make([]ColumnStats, 0, len(columns))}
	for _, name := range columns {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("describe: unknown column %q", name)
		}
		if !col.Kind.Numeric() {
			return nil, fmt.Errorf("describe: column %q is %s, not numeric", name, col.Kind)
		}
		s, err := describeValues(name, col.Floats())
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", name, err)
		}
		d.Columns = append(d.Columns, s)
	}
	return d, nil
}

func describeValues(name string, vals []float64) (ColumnStats, error) {
	nan := math.NaN()
	s := ColumnStats{Column: name, Count: len(vals), Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	if len(vals) == 0 {
		return s, nil
	}
	var err error
	if s.Mean, err = stats.Mean(vals); err != nil {
		return s, fmt.Errorf("mean: %w", err)
	}
	if len(vals) > 1 {
		if s.Std, err = stats.StandardDeviationSample(vals); err != nil {
			return s, fmt.Errorf("std: %w", err)
		}
	}
	if s.Min, err = stats.Min(vals); err != nil {
		return s, fmt.Errorf("min: %w", err)
	}
	if s.Max, err = stats.Max(vals); err != nil {
		return s, fmt.Errorf("max: %w", err)
	}
	sorted := sortedCopy(vals)
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s, nil
}

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

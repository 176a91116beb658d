package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
// Undefined coefficients are NaN.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Correlation computes pairwise Pearson coefficients over the named numeric
// columns. Each pair uses only the rows where both cells are present.
func Correlation(t *Table, columns []string) (*CorrMatrix, error) {
	if len(columns) < 2 {
		return nil, fmt.Errorf("correlation over %d columns: %w", len(columns), ErrTooFewColumns)
	}
	cols := make([]*Column, len(columns))
	for i, name := range columns {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("correlation: unknown column %q", name)
		}
		if !c.Kind.Numeric() {
			return nil, fmt.Errorf("correlation: column %q is %s, not numeric", name, c.Kind)
		}
		cols[i] = c
	}
	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r, err := pairCorr(cols[a], cols[b])
			if err != nil {
				return nil, fmt.Errorf("correlation %q ~ %q: %w", columns[a], columns[b], err)
			}
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return &CorrMatrix{Columns: append([]string(nil), columns...), Values: mat}, nil
}

func pairCorr(x, y *Column) (float64, error) {
	var xs, ys []float64
	for i := 0; i < x.Len(); i++ {
		xv, okx := x.Float(i)
		yv, oky := y.Float(i)
		if okx && oky {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN(), nil
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil {
		return math.NaN(), err
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

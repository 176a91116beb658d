package analysis

import "math"

// HistogramBins is the fixed bin count of the histogram panel.
const HistogramBins = 20

// Bin is one half-open interval [Lo, Hi) of a histogram; the last bin also
// holds Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Finite returns the values of vals that are neither NaN nor infinite.
func Finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Histogram splits [min, max] of the finite vals into n equal-width bins. A
// zero-width range is widened to [v-0.5, v+0.5]. Returns nil when no finite
// value is left.
func Histogram(vals []float64, n int) []Bin {
	vals = Finite(vals)
	if len(vals) == 0 || n <= 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins
}

// BoxStats summarizes a distribution for a box plot. Whiskers reach the most
// extreme values within 1.5 IQR of the box.
type BoxStats struct {
	N            int
	Q1           float64
	Median       float64
	Q3           float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// Box computes box plot statistics over the finite vals; ok is false when
// none is left.
func Box(vals []float64) (BoxStats, bool) {
	vals = Finite(vals)
	if len(vals) == 0 {
		return BoxStats{}, false
	}
	sorted := sortedCopy(vals)
	b := BoxStats{
		N:      len(sorted),
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= lowFence {
			b.LowerWhisker = math.Min(v, b.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			b.UpperWhisker = math.Max(sorted[i], b.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, true
}

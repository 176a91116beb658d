package analysis

import "sort"

// CategoryCount is one distinct value of a column and how many rows hold it.
type CategoryCount struct {
	Value string
	Count int
}

// ValueCounts aggregates a column into value frequencies, most frequent
// first. Missing cells are not counted; ties keep first-appearance order.
func ValueCounts(c *Column) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.Display(i)
		if j, ok := index[v]; ok {
			out[j].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, CategoryCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TotalCount sums the counts.
func TotalCount(counts []CategoryCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}

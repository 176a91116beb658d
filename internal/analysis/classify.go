package analysis

// Classification partitions a table's column names by storage kind.
// Numeric and Categorical never share a name; Other holds the rest.
type Classification struct {
	Numeric     []string
	Categorical []string
	Other       []string
}

// Classify buckets columns in table order: int/float columns are numeric,
// text columns are categorical, anything else (bool) goes to Other.
func Classify(t *Table) Classification {
	var c Classification
	for _, col := range t.Columns {
		switch {
		case col.Kind.Numeric():
			c.Numeric = append(c.Numeric, col.Name)
		case col.Kind == KindText:
			c.Categorical = append(c.Categorical, col.Name)
		default:
			c.Other = append(c.Other, col.Name)
		}
	}
	return c
}

// IsNumeric reports whether name is in the numeric bucket.
func (c Classification) IsNumeric(name string) bool { return contains(c.Numeric, name) }

// IsCategorical reports whether name is in the categorical bucket.
func (c Classification) IsCategorical(name string) bool { return contains(c.Categorical, name) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind is the storage type inferred for a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind are integral or floating-point.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// naTokens are the cell values read as missing, matched after trimming.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissingToken reports whether a raw cell value is read as missing.
func IsMissingToken(v string) bool {
	_, ok := naTokens[strings.TrimSpace(v)]
	return ok
}

// Column is one named, uniformly typed column of a Table.
type Column struct {
	Name    string
	Kind    Kind
	cells   []string
	missing []bool
	nums    []float64 // numeric kinds only; NaN where missing
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.cells) }

// IsMissing reports whether row i holds no value.
func (c *Column) IsMissing(i int) bool { return c.missing[i] }

// Raw returns the trimmed cell text of row i.
func (c *Column) Raw(i int) string { return c.cells[i] }

// Float returns the numeric value of row i. ok is false for missing cells
// and non-numeric columns.
func (c *Column) Float(i int) (float64, bool) {
	if !c.Kind.Numeric() || c.missing[i] {
		return math.NaN(), false
	}
	return c.nums[i], true
}

// Floats returns the non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	if !c.Kind.Numeric() {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for i, v := range c.nums {
		if !c.missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount returns how many cells of the column are missing.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n
}

// Display renders row i for tabular previews.
func (c *Column) Display(i int) string {
	if c.missing[i] {
		if c.Kind.Numeric() {
			return "NaN"
		}
		return "None"
	}
	if c.Kind == KindBool {
		if strings.EqualFold(c.cells[i], "true") {
			return "True"
		}
		return "False"
	}
	return c.cells[i]
}

// Table is an in-memory dataset: ordered columns sharing one row count.
// A Table is never modified after Read returns it.
type Table struct {
	Name    string
	Columns []*Column
	rows    int
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.rows }

// Column looks up a column by its (trimmed) name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Head returns up to n rows rendered with Column.Display.
func (t *Table) Head(n int) [][]string {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Display(i)
		}
		out[i] = row
	}
	return out
}

// MissingCells counts missing cells across every column and row.
func (t *Table) MissingCells() int {
	n := 0
	for _, c := range t.Columns {
		n += c.MissingCount()
	}
	return n
}

// Load reads the CSV file at path into a Table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	t, err := Read(f, ',')
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// Read parses delimited text with a header row into a Table.
func Read(src io.Reader, delim rune) (*Table, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: ErrNoColumns}
		}
		return nil, &ParseError{Line: csvLine(err, 1), Err: err}
	}
	names := normalizeHeader(header)
	ncol := len(names)

	raw := make([][]string, ncol)
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Line: csvLine(err, rows+2), Err: err}
		}
		if len(rec) > ncol {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected %d fields, saw %d", ncol, len(rec))}
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			raw[j] = append(raw[j], v)
		}
		rows++
	}

	t := &Table{Columns: make([]*Column, ncol), rows: rows}
	for j, name := range names {
		t.Columns[j] = buildColumn(name, raw[j])
	}
	return t, nil
}

func buildColumn(name string, cells []string) *Column {
	c := &Column{Name: name, cells: cells, missing: make([]bool, len(cells))}
	present := 0
	for i, v := range cells {
		if _, ok := naTokens[v]; ok {
			c.missing[i] = true
			continue
		}
		present++
	}
	c.Kind = inferKind(cells, c.missing, present)
	if c.Kind.Numeric() {
		c.nums = make([]float64, len(cells))
		for i, v := range cells {
			if c.missing[i] {
				c.nums[i] = math.NaN()
				continue
			}
			c.nums[i], _ = parseFloat(v)
			// spellings like "NAN" parse to NaN without being NA tokens
			if math.IsNaN(c.nums[i]) {
				c.missing[i] = true
			}
		}
	}
	return c
}

// inferKind picks the narrowest kind every present value fits.
// An all-missing column is float, like a column of NaN.
func inferKind(cells []string, missing []bool, present int) Kind {
	if present == 0 {
		return KindFloat
	}
	isInt, isFloat, isBool := true, true, present == len(cells)
	for i, v := range cells {
		if missing[i] {
			continue
		}
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat && !isInt {
			if _, ok := parseFloat(v); !ok {
				isFloat = false
			}
		}
		if isBool && !isBoolLiteral(v) {
			isBool = false
		}
		if !isInt && !isFloat && !isBool {
			return KindText
		}
	}
	switch {
	case isInt:
		return KindInt
	case isFloat:
		return KindFloat
	case isBool:
		return KindBool
	}
	return KindText
}

func parseFloat(s string) (float64, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") ||
		strings.HasPrefix(s, "-0x") || strings.HasPrefix(s, "+0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isBoolLiteral(s string) bool {
	switch s {
	case "True", "False", "true", "false", "TRUE", "FALSE":
		return true
	}
	return false
}

// normalizeHeader trims names, fills blanks and de-duplicates repeats.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

func csvLine(err error, fallback int) int {
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		return ce.Line
	}
	return fallback
}

package analysis

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csvRows = []string{
	" age , city ,score,passed,deadline",
	"19,Bandung,80.5,True,2024-01-02",
	"21,Jakarta,NA,False,2024-01-03",
	",Bandung,75,True,2024-01-04",
	"20,,90.25,False,2024-01-05",
	"22,Surabaya,66,True,",
}

func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func TestLoadInfersKindsAndTrimsHeader(t *testing.T) {
	tbl, err := Load(writeCSV(t, "students.csv", csvRows...))
	require.NoError(t, err)

	assert.Equal(t, "students.csv", tbl.Name)
	assert.Equal(t, 5, tbl.Rows())
	assert.Equal(t, []string{"age", "city", "score", "passed", "deadline"}, tbl.ColumnNames())

	kinds := map[string]Kind{}
	for _, c := range tbl.Columns {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, KindInt, kinds["age"])
	assert.Equal(t, KindText, kinds["city"])
	assert.Equal(t, KindFloat, kinds["score"])
	assert.Equal(t, KindBool, kinds["passed"])
	assert.Equal(t, KindText, kinds["deadline"], "dates are not parsed at load time")
}

func TestMissingCellsAndDisplay(t *testing.T) {
	tbl, err := Load(writeCSV(t, "students.csv", csvRows...))
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.MissingCells())

	age, ok := tbl.Column("age")
	require.True(t, ok)
	assert.Equal(t, 1, age.MissingCount())
	assert.Equal(t, []float64{19, 21, 20, 22}, age.Floats())
	v, ok := age.Float(2)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(v))

	head := tbl.Head(10)
	require.Len(t, head, 5)
	assert.Equal(t, "NaN", head[2][0])
	assert.Equal(t, "None", head[3][1])
	assert.Equal(t, "True", head[0][3])
}

func TestKindInference(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
		want  Kind
	}{
		{"ints", []string{"1", "-2", "+3"}, KindInt},
		{"ints with gap", []string{"1", "", "3"}, KindInt},
		{"mixed int float", []string{"1", "2.5", "1e3"}, KindFloat},
		{"all missing", []string{"", "NA", "null"}, KindFloat},
		{"bools", []string{"true", "FALSE", "True"}, KindBool},
		{"bools with gap", []string{"true", "", "False"}, KindText},
		{"hex is text", []string{"0x10", "1"}, KindText},
		{"text", []string{"1", "two", "3"}, KindText},
		{"percent is text", []string{"10%", "20%"}, KindText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := buildColumn("c", tc.cells)
			assert.Equal(t, tc.want, c.Kind)
		})
	}
}

func TestHeaderNormalization(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeffname, name ,,name.1,name\n1,2,3,4,5\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "name.1", "Unnamed: 2", "name.1.1", "name.2"}, tbl.ColumnNames())
}

func TestShortRowsArePadded(t *testing.T) {
	tbl, err := Read(strings.NewReader("a,b,c\n1,2\n3,4,5\n"), ',')
	require.NoError(t, err)
	c, _ := tbl.Column("c")
	assert.True(t, c.IsMissing(0))
	assert.Equal(t, KindInt, c.Kind)
}

func TestLoadErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "data lastminute bersih.csv"))
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "data lastminute bersih.csv")
	})
	t.Run("empty file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(p, nil, 0o644))
		_, err := Load(p)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.ErrorIs(t, err, ErrNoColumns)
		assert.Equal(t, p, pe.Path)
	})
	t.Run("too many fields", func(t *testing.T) {
		_, err := Load(writeCSV(t, "wide.csv", "a,b", "1,2", "3,4,5"))
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 3, pe.Line)
		assert.Contains(t, err.Error(), "expected 2 fields, saw 3")
	})
	t.Run("bad quoting", func(t *testing.T) {
		_, err := Load(writeCSV(t, "quote.csv", "a,b", `1,"unterminated`))
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
	})
}

func TestNonFiniteSpellings(t *testing.T) {
	tbl, err := Read(strings.NewReader("v\n1\ninf\nNAN\n-Infinity\n"), ',')
	require.NoError(t, err)
	v, ok := tbl.Column("v")
	require.True(t, ok)
	assert.Equal(t, KindFloat, v.Kind)
	assert.Equal(t, 1, v.MissingCount(), "NAN is missing like NaN")
	assert.True(t, v.IsMissing(2))
	assert.Equal(t, "NaN", v.Display(2))
	f, ok := v.Float(1)
	require.True(t, ok)
	assert.True(t, math.IsInf(f, 1))
	assert.Len(t, v.Floats(), 3)
}

func TestLoadIsCommaSeparated(t *testing.T) {
	tbl, err := Load(writeCSV(t, "data.tsv", "x\ty", "1\ta"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x\ty"}, tbl.ColumnNames())
}

package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustRead parses a CSV literal or fails the test.
func mustRead(t *testing.T, csvData string) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(csvData), ReadOptions{})
	require.NoError(t, err)
	return tbl
}

func TestTableShape(t *testing.T) {
	tbl := mustRead(t, "name,age,city\na,1,x\nb,2,y\nc,3,z\nd,4,w\n")

	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumCols())
	assert.Equal(t, []string{"name", "age", "city"}, tbl.ColumnNames())
}

func TestColumnKinds(t *testing.T) {
	t.Run("AllNumeric", func(t *testing.T) {
		tbl := mustRead(t, "score\n1\n2.5\n-3\n")
		assert.Equal(t, KindNumeric, tbl.Columns()[0].Kind)
	})

	t.Run("OneBadCellMakesText", func(t *testing.T) {
		// A single unparsable cell demotes the whole column, even
		// though the other cells look numeric.
		tbl := mustRead(t, "score\n1\ntwo\n3\n")
		assert.Equal(t, KindText, tbl.Columns()[0].Kind)

		// Numeric-looking cells in a text column stay text.
		assert.Equal(t, "1", tbl.Cell(0, 0).JSON())
	})

	t.Run("MissingCellsDoNotDemote", func(t *testing.T) {
		tbl := mustRead(t, "score\n1\n\n3\n")
		assert.Equal(t, KindNumeric, tbl.Columns()[0].Kind)
	})

	t.Run("AllMissingIsNumeric", func(t *testing.T) {
		tbl := mustRead(t, "score\n\n\n")
		assert.Equal(t, KindNumeric, tbl.Columns()[0].Kind)
	})
}

func TestValueRendering(t *testing.T) {
	num := NewNumber(1.5, "1.50")
	assert.Equal(t, "1.50", num.String(), "numbers render their original lexeme")
	assert.Equal(t, 1.5, num.JSON())

	f, ok := num.Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	txt := NewText("hello")
	assert.Equal(t, "hello", txt.String())
	assert.Equal(t, "hello", txt.JSON())
	_, ok = txt.Float()
	assert.False(t, ok)

	var missing Value
	assert.True(t, missing.IsMissing())
	assert.Equal(t, "", missing.String())
	assert.Equal(t, "", missing.JSON())
}

func TestColumnIndex(t *testing.T) {
	tbl := mustRead(t, "a,b\n1,2\n")

	idx, ok := tbl.ColumnIndex("b")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = tbl.ColumnIndex("missing")
	assert.False(t, ok)
}

func TestNewTableValidation(t *testing.T) {
	t.Run("DuplicateNames", func(t *testing.T) {
		_, err := NewTable(
			[]Column{{Name: "a"}, {Name: "a"}},
			nil,
		)
		require.Error(t, err)
	})

	t.Run("RaggedRows", func(t *testing.T) {
		_, err := NewTable(
			[]Column{{Name: "a"}, {Name: "b"}},
			[][]Value{{NewText("x")}},
		)
		require.Error(t, err)
	})
}

func TestMissingCounts(t *testing.T) {
	tbl := mustRead(t, "a,b\n1,x\n,y\n3,\n")

	counts := tbl.MissingCounts()
	assert.Equal(t, 1, counts["a"])
	assert.Equal(t, 1, counts["b"])

	// Columns without gaps still appear with a zero count.
	full := mustRead(t, "a\n1\n2\n")
	assert.Equal(t, 0, full.MissingCounts()["a"])
}

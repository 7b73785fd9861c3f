// Package tabular implements the in-memory table model and the
// transformations exposed by the service: cleaning, filtering, chart
// aggregation, descriptive statistics and summary formatting.
//
// A Table is immutable under transformation: every operation computes a
// fresh Table and leaves the receiver untouched, so callers can swap the
// result in only after the whole operation succeeded.
package tabular

import (
	"fmt"

	"github.com/gear6io/sift/pkg/errors"
)

// Kind classifies a column.
type Kind uint8

const (
	// KindText marks columns holding at least one non-numeric cell.
	KindText Kind = iota
	// KindNumeric marks columns whose non-missing cells all parsed as
	// floats at ingestion. Only these participate in statistics.
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

type cellState uint8

const (
	cellMissing cellState = iota
	cellNumber
	cellText
)

// Value is a single cell. The zero Value is a missing cell.
//
// Number cells keep the original lexeme next to the parsed float so that
// exports reproduce the input byte for byte ("1.50" stays "1.50").
type Value struct {
	state cellState
	num   float64
	raw   string
}

// NewNumber returns a numeric cell. raw is the lexeme the number was
// parsed from and becomes the cell's textual rendering.
func NewNumber(num float64, raw string) Value {
	return Value{state: cellNumber, num: num, raw: raw}
}

// NewText returns a text cell.
func NewText(s string) Value {
	return Value{state: cellText, raw: s}
}

func (v Value) IsMissing() bool {
	return v.state == cellMissing
}

// Float returns the numeric value, or false for text and missing cells.
func (v Value) Float() (float64, bool) {
	if v.state != cellNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the cell the way it appears in CSV output: the original
// lexeme for numbers, the text itself, or "" for missing.
func (v Value) String() string {
	return v.raw
}

// JSON returns the cell as it should appear in a JSON payload: float64
// for numbers, string for text, "" for missing.
func (v Value) JSON() interface{} {
	switch v.state {
	case cellNumber:
		return v.num
	case cellText:
		return v.raw
	default:
		return ""
	}
}

// Column is one entry of a table's schema.
type Column struct {
	Name string
	Kind Kind
}

// Table is an ordered set of named columns over row-major cells.
//
// Invariants: every row has exactly len(cols) cells, column names are
// unique, and rows are densely indexed 0..NumRows()-1.
type Table struct {
	cols []Column
	rows [][]Value
}

// NewTable builds a table from a schema and row-major cells. Column
// kinds are re-derived from the cells, so callers only need names.
func NewTable(cols []Column, rows [][]Value) (*Table, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c.Name]; dup {
			return nil, errors.Newf(ErrInvalidSchema, "duplicate column name '%s'", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, errors.Newf(ErrInvalidSchema, "row %d has %d cells, expected %d", i, len(row), len(cols))
		}
	}

	t := &Table{cols: append([]Column(nil), cols...), rows: rows}
	t.deriveKinds()
	return t, nil
}

func (t *Table) NumRows() int {
	return len(t.rows)
}

func (t *Table) NumCols() int {
	return len(t.cols)
}

// Columns returns the schema in table order.
func (t *Table) Columns() []Column {
	return t.cols
}

// ColumnNames returns the names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex resolves a name to its position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.cols {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// requireColumn is ColumnIndex with the not-found error every operation
// shares.
func (t *Table) requireColumn(name string) (int, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return 0, errors.Newf(ErrColumnNotFound, "column '%s' not found", name)
	}
	return idx, nil
}

// Cell returns the value at (row, col). Callers index within bounds.
func (t *Table) Cell(row, col int) Value {
	return t.rows[row][col]
}

// Row returns one row's cells. The slice aliases table storage and must
// not be mutated.
func (t *Table) Row(i int) []Value {
	return t.rows[i]
}

// subset builds a new table holding the given row indices, in order.
// The cell slices are shared with the receiver; cells are never mutated
// in place, so sharing is safe.
func (t *Table) subset(rowIdx []int) *Table {
	rows := make([][]Value, len(rowIdx))
	for i, ri := range rowIdx {
		rows[i] = t.rows[ri]
	}
	out := &Table{cols: append([]Column(nil), t.cols...), rows: rows}
	out.deriveKinds()
	return out
}

// deriveKinds recomputes every column's Kind from its cells: a column is
// numeric while all its non-missing cells are numbers. A text cell
// demotes the column, the way inserting a string into a float column
// turns it into an object column in a dataframe.
func (t *Table) deriveKinds() {
	for ci := range t.cols {
		kind := KindNumeric
		for ri := range t.rows {
			if t.rows[ri][ci].state == cellText {
				kind = KindText
				break
			}
		}
		t.cols[ci].Kind = kind
	}
}

// MissingCounts returns the number of missing cells per column, keyed by
// name. Every column is present, zeros included.
func (t *Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(t.cols))
	for ci, c := range t.cols {
		n := 0
		for ri := range t.rows {
			if t.rows[ri][ci].IsMissing() {
				n++
			}
		}
		counts[c.Name] = n
	}
	return counts
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows, %d columns)", t.NumRows(), t.NumCols())
}

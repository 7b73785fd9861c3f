package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gear6io/sift/pkg/errors"
)

// missingSentinels are the spellings treated as a missing cell at
// ingestion. Matching is exact, no trimming: " NA" is text.
var missingSentinels = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"null": {},
	"NULL": {},
	"NaN":  {},
	"nan":  {},
}

func isMissingToken(s string) bool {
	_, ok := missingSentinels[s]
	return ok
}

// parseNumber reports whether s is a finite float. Surrounding
// whitespace is tolerated; infinities and NaN spellings are not numbers
// because they cannot travel through JSON.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ReadOptions bound CSV ingestion.
type ReadOptions struct {
	// MaxRows caps the number of data rows; 0 means unlimited.
	MaxRows int
}

// ReadCSV parses a CSV document into a typed table. The first record is
// the header. A column is numeric when every non-missing cell parses as
// a float; otherwise all its cells are kept as text, numeric-looking
// ones included.
func ReadCSV(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(ErrCSVEmpty, "csv input is empty", nil)
	}
	if err != nil {
		return nil, errors.New(ErrCSVParse, "failed to parse csv header", err)
	}

	names := mangleHeader(header)

	var records [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(ErrCSVParse, "failed to parse csv", err)
		}
		if opts.MaxRows > 0 && len(records) >= opts.MaxRows {
			return nil, errors.Newf(ErrRowLimit, "csv exceeds maximum of %d rows", opts.MaxRows)
		}
		records = append(records, record)
	}

	// Inference pass: a single unparsable non-missing cell makes the
	// whole column text.
	numeric := make([]bool, len(names))
	for i := range numeric {
		numeric[i] = true
	}
	for _, record := range records {
		for ci, cell := range record {
			if !numeric[ci] || isMissingToken(cell) {
				continue
			}
			if _, ok := parseNumber(cell); !ok {
				numeric[ci] = false
			}
		}
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name}
	}
	rows := make([][]Value, len(records))
	for ri, record := range records {
		row := make([]Value, len(names))
		for ci, cell := range record {
			switch {
			case isMissingToken(cell):
				row[ci] = Value{}
			case numeric[ci]:
				f, _ := parseNumber(cell)
				row[ci] = NewNumber(f, cell)
			default:
				row[ci] = NewText(cell)
			}
		}
		rows[ri] = row
	}

	return NewTable(cols, rows)
}

// mangleHeader deduplicates header names the way dataframes do: the
// second "name" becomes "name.1", the third "name.2". Blank headers get
// positional names.
func mangleHeader(header []string) []string {
	names := make([]string, len(header))
	counts := make(map[string]int, len(header))
	used := make(map[string]struct{}, len(header))

	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Column_%d", i)
		}
		if _, taken := used[name]; taken {
			base := name
			for k := counts[base] + 1; ; k++ {
				candidate := fmt.Sprintf("%s.%d", base, k)
				if _, dup := used[candidate]; !dup {
					counts[base] = k
					name = candidate
					break
				}
			}
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}

// WriteCSV writes the table as CSV: header row first, missing cells as
// empty strings, numbers as their original lexemes.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.ColumnNames()); err != nil {
		return errors.New(ErrCSVWrite, "failed to write csv header", err)
	}

	record := make([]string, len(t.cols))
	for ri := range t.rows {
		for ci := range t.cols {
			record[ci] = t.rows[ri][ci].String()
		}
		if err := cw.Write(record); err != nil {
			return errors.Newf(ErrCSVWrite, "failed to write csv row %d", ri).WithCause(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.New(ErrCSVWrite, "failed to flush csv output", err)
	}
	return nil
}

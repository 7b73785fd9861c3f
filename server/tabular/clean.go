package tabular

import (
	"github.com/gear6io/sift/pkg/errors"
)

// CleanMethod selects the missing-value strategy.
type CleanMethod string

const (
	CleanDropNA CleanMethod = "dropna"
	CleanFillNA CleanMethod = "fillna"
)

// ParseCleanMethod validates a wire-level method string.
func ParseCleanMethod(s string) (CleanMethod, error) {
	switch CleanMethod(s) {
	case CleanDropNA, CleanFillNA:
		return CleanMethod(s), nil
	}
	return "", errors.Newf(ErrUnknownCleanMethod, "unknown cleaning method '%s'", s)
}

// Clean applies a cleaning method and returns the cleaned table. Column
// "" or "all" addresses the whole table; anything else must name an
// existing column. The receiver is never modified.
func (t *Table) Clean(method CleanMethod, column, fillValue string) (*Table, error) {
	switch method {
	case CleanDropNA:
		return t.dropNA(column)
	case CleanFillNA:
		return t.fillNA(column, fillValue)
	default:
		return nil, errors.Newf(ErrUnknownCleanMethod, "unknown cleaning method '%s'", string(method))
	}
}

// dropNA removes rows that are missing in any of the targeted columns.
func (t *Table) dropNA(column string) (*Table, error) {
	targets, err := t.cleanTargets(column)
	if err != nil {
		return nil, err
	}

	keep := make([]int, 0, len(t.rows))
	for ri := range t.rows {
		complete := true
		for _, ci := range targets {
			if t.rows[ri][ci].IsMissing() {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, ri)
		}
	}
	return t.subset(keep), nil
}

// fillNA replaces missing cells in the targeted columns with the literal
// fill value as text. Filling a numeric column therefore demotes it to
// text, numeric-looking fill values included.
func (t *Table) fillNA(column, fillValue string) (*Table, error) {
	if fillValue == "" {
		return nil, errors.New(ErrFillValueRequired, "Fill value required.", nil)
	}
	targets, err := t.cleanTargets(column)
	if err != nil {
		return nil, err
	}

	rows := make([][]Value, len(t.rows))
	for ri, row := range t.rows {
		// Rows may be shared with the source table, so copy before
		// writing.
		newRow := append([]Value(nil), row...)
		for _, ci := range targets {
			if newRow[ci].IsMissing() {
				newRow[ci] = NewText(fillValue)
			}
		}
		rows[ri] = newRow
	}

	out := &Table{cols: append([]Column(nil), t.cols...), rows: rows}
	out.deriveKinds()
	return out, nil
}

// cleanTargets resolves the column argument of a cleaning request to
// column indices.
func (t *Table) cleanTargets(column string) ([]int, error) {
	if column == "" || column == "all" {
		all := make([]int, len(t.cols))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	idx, err := t.requireColumn(column)
	if err != nil {
		return nil, err
	}
	return []int{idx}, nil
}

package tabular

import (
	"strings"

	"github.com/gear6io/sift/pkg/errors"
)

// FilterOp is a row predicate operator.
type FilterOp string

const (
	FilterGT       FilterOp = "gt"
	FilterLT       FilterOp = "lt"
	FilterEQ       FilterOp = "eq"
	FilterContains FilterOp = "contains"
)

// ParseFilterOp validates a wire-level operation string.
func ParseFilterOp(s string) (FilterOp, error) {
	switch FilterOp(s) {
	case FilterGT, FilterLT, FilterEQ, FilterContains:
		return FilterOp(s), nil
	}
	return "", errors.Newf(ErrUnknownFilterOp, "unknown filter operation '%s'", s)
}

// Filter keeps the rows whose cell in the named column satisfies the
// predicate. Missing cells never match, whatever the operator. The
// result is a fresh, densely renumbered table.
//
// On numeric columns gt/lt/eq compare as floats and the filter value
// must parse as one. On text columns gt/lt are lexicographic and eq is
// exact. contains is a case-insensitive substring match on the cell's
// textual rendering for both kinds.
func (t *Table) Filter(column string, op FilterOp, value string) (*Table, error) {
	ci, err := t.requireColumn(column)
	if err != nil {
		return nil, err
	}

	pred, err := t.buildPredicate(ci, op, value)
	if err != nil {
		return nil, err
	}

	keep := make([]int, 0, len(t.rows))
	for ri := range t.rows {
		cell := t.rows[ri][ci]
		if cell.IsMissing() {
			continue
		}
		if pred(cell) {
			keep = append(keep, ri)
		}
	}
	return t.subset(keep), nil
}

func (t *Table) buildPredicate(ci int, op FilterOp, value string) (func(Value) bool, error) {
	if op == FilterContains {
		needle := strings.ToLower(value)
		return func(v Value) bool {
			return strings.Contains(strings.ToLower(v.String()), needle)
		}, nil
	}

	if t.cols[ci].Kind == KindNumeric {
		target, ok := parseNumber(value)
		if !ok {
			return nil, errors.Newf(ErrFilterValueNotNumeric,
				"cannot compare numeric column '%s' with non-numeric value '%s'", t.cols[ci].Name, value)
		}
		switch op {
		case FilterGT:
			return func(v Value) bool { f, _ := v.Float(); return f > target }, nil
		case FilterLT:
			return func(v Value) bool { f, _ := v.Float(); return f < target }, nil
		case FilterEQ:
			return func(v Value) bool { f, _ := v.Float(); return f == target }, nil
		}
	} else {
		switch op {
		case FilterGT:
			return func(v Value) bool { return v.String() > value }, nil
		case FilterLT:
			return func(v Value) bool { return v.String() < value }, nil
		case FilterEQ:
			return func(v Value) bool { return v.String() == value }, nil
		}
	}

	return nil, errors.Newf(ErrUnknownFilterOp, "unknown filter operation '%s'", string(op))
}

package tabular

import (
	"math"
	"sort"
)

// ColumnStats mirrors one row of a transposed describe() table. The
// JSON keys are part of the API contract, capitalization included.
type ColumnStats struct {
	Column string  `json:"Column"`
	Count  float64 `json:"Count"`
	Mean   float64 `json:"Mean"`
	Std    float64 `json:"Std"`
	Min    float64 `json:"Min"`
	P25    float64 `json:"25%"`
	P50    float64 `json:"50%"`
	P75    float64 `json:"75%"`
	Max    float64 `json:"Max"`
}

// Describe computes descriptive statistics for every numeric column, in
// table order. Missing cells are excluded per column. A table without
// numeric columns yields an empty, non-nil slice.
func (t *Table) Describe() []ColumnStats {
	out := make([]ColumnStats, 0, len(t.cols))
	for ci, col := range t.cols {
		if col.Kind != KindNumeric {
			continue
		}
		xs := make([]float64, 0, len(t.rows))
		for ri := range t.rows {
			if f, ok := t.rows[ri][ci].Float(); ok {
				xs = append(xs, f)
			}
		}
		out = append(out, describeColumn(col.Name, xs))
	}
	return out
}

func describeColumn(name string, xs []float64) ColumnStats {
	st := ColumnStats{Column: name, Count: float64(len(xs))}
	if len(xs) == 0 {
		return st
	}

	sort.Float64s(xs)

	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	// Sample standard deviation. JSON has no NaN, so a single
	// observation reports 0 instead.
	var std float64
	if len(xs) > 1 {
		var sq float64
		for _, x := range xs {
			d := x - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(len(xs)-1))
	}

	st.Mean = mean
	st.Std = std
	st.Min = xs[0]
	st.Max = xs[len(xs)-1]
	st.P25 = percentile(xs, 0.25)
	st.P50 = percentile(xs, 0.50)
	st.P75 = percentile(xs, 0.75)
	return st
}

// percentile returns the q-quantile of sorted xs, interpolating
// linearly between closest ranks.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

package tabular

import (
	"sort"
	"strconv"

	"github.com/gear6io/sift/pkg/errors"
)

// ChartType selects the aggregation shape of a plot request.
type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartPie     ChartType = "pie"
	ChartScatter ChartType = "scatter"
)

// ParseChartType validates a wire-level chart type string.
func ParseChartType(s string) (ChartType, error) {
	switch ChartType(s) {
	case ChartBar, ChartLine, ChartPie, ChartScatter:
		return ChartType(s), nil
	}
	return "", errors.Newf(ErrUnknownChartType, "unknown chart type '%s'", s)
}

// PlotData is a chart-ready series. Labels hold strings for grouped and
// frequency series, and raw cell values (numbers or strings) for
// scatter points.
type PlotData struct {
	Labels []interface{} `json:"labels"`
	Values []float64     `json:"values"`
	Label  string        `json:"label"`
}

// Plot builds the series for the requested axes. Routing follows the
// request shape:
//
//	y axis named and chart is bar/line/pie  -> sum of y grouped by x
//	chart is scatter                        -> one point per row (y required)
//	no y axis                               -> frequency of x values
//
// Rows with a missing x value never contribute to any series.
func (t *Table) Plot(xAxis, yAxis string, chart ChartType) (*PlotData, error) {
	switch chart {
	case ChartBar, ChartLine, ChartPie, ChartScatter:
	default:
		return nil, errors.Newf(ErrUnknownChartType, "unknown chart type '%s'", string(chart))
	}

	xi, err := t.requireColumn(xAxis)
	if err != nil {
		return nil, err
	}

	if yAxis != "" && chart != ChartScatter {
		yi, err := t.requireColumn(yAxis)
		if err != nil {
			return nil, err
		}
		return t.groupSum(xi, yi)
	}

	if chart == ChartScatter {
		if yAxis == "" {
			return nil, errors.New(ErrYAxisRequired, "scatter charts require a y_axis", nil)
		}
		yi, err := t.requireColumn(yAxis)
		if err != nil {
			return nil, err
		}
		return t.scatter(xi, yi)
	}

	return t.frequency(xi), nil
}

// groupKey canonicalizes a cell for grouping. Numeric cells group by
// value so "1" and "1.0" land in the same bucket; text cells group by
// content.
func groupKey(v Value, numeric bool) (string, float64) {
	if numeric {
		f, _ := v.Float()
		return strconv.FormatFloat(f, 'g', -1, 64), f
	}
	return v.String(), 0
}

// groupSum sums y per distinct x value, keys ascending.
func (t *Table) groupSum(xi, yi int) (*PlotData, error) {
	if t.cols[yi].Kind != KindNumeric {
		return nil, errors.Newf(ErrSumTextColumn, "cannot sum non-numeric column '%s'", t.cols[yi].Name)
	}
	numericX := t.cols[xi].Kind == KindNumeric

	type group struct {
		label  string
		keyNum float64
		sum    float64
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for ri := range t.rows {
		x := t.rows[ri][xi]
		if x.IsMissing() {
			continue
		}
		key, keyNum := groupKey(x, numericX)
		g, ok := groups[key]
		if !ok {
			g = &group{label: x.String(), keyNum: keyNum}
			groups[key] = g
			order = append(order, key)
		}
		// A missing y contributes nothing, so an all-missing group
		// sums to zero.
		if f, ok := t.rows[ri][yi].Float(); ok {
			g.sum += f
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if numericX {
			return groups[order[i]].keyNum < groups[order[j]].keyNum
		}
		return order[i] < order[j]
	})

	labels := make([]interface{}, 0, len(order))
	values := make([]float64, 0, len(order))
	for _, key := range order {
		labels = append(labels, groups[key].label)
		values = append(values, groups[key].sum)
	}

	return &PlotData{
		Labels: labels,
		Values: values,
		Label:  "Sum of " + t.cols[yi].Name,
	}, nil
}

// frequency counts distinct x values, most frequent first. Ties keep
// their first-encounter order.
func (t *Table) frequency(xi int) *PlotData {
	numericX := t.cols[xi].Kind == KindNumeric

	type group struct {
		label string
		count int
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for ri := range t.rows {
		x := t.rows[ri][xi]
		if x.IsMissing() {
			continue
		}
		key, _ := groupKey(x, numericX)
		g, ok := groups[key]
		if !ok {
			g = &group{label: x.String()}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].count > groups[order[j]].count
	})

	labels := make([]interface{}, 0, len(order))
	values := make([]float64, 0, len(order))
	for _, key := range order {
		labels = append(labels, groups[key].label)
		values = append(values, float64(groups[key].count))
	}

	return &PlotData{
		Labels: labels,
		Values: values,
		Label:  "Frequency",
	}
}

// scatter emits one (x, y) pair per row. Labels carry the raw x values
// so numeric axes stay numeric in the payload. Rows missing either
// coordinate are skipped.
func (t *Table) scatter(xi, yi int) (*PlotData, error) {
	if t.cols[yi].Kind != KindNumeric {
		return nil, errors.Newf(ErrScatterTextColumn, "cannot plot non-numeric column '%s' on the y axis", t.cols[yi].Name)
	}

	labels := make([]interface{}, 0, len(t.rows))
	values := make([]float64, 0, len(t.rows))
	for ri := range t.rows {
		x := t.rows[ri][xi]
		y := t.rows[ri][yi]
		if x.IsMissing() || y.IsMissing() {
			continue
		}
		f, _ := y.Float()
		labels = append(labels, x.JSON())
		values = append(values, f)
	}

	return &PlotData{
		Labels: labels,
		Values: values,
		Label:  t.cols[yi].Name + " vs " + t.cols[xi].Name,
	}, nil
}

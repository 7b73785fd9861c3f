package sdk

// TableInfo is the shape report the server returns after an upload and
// after every mutating operation.
type TableInfo struct {
	SessionID     string                   `json:"session_id"`
	Filename      string                   `json:"filename"`
	TotalRows     int                      `json:"total_rows"`
	TotalColumns  int                      `json:"total_columns"`
	Columns       []string                 `json:"columns"`
	MissingValues map[string]int           `json:"missing_values"`
	Preview       []map[string]interface{} `json:"preview"`
}

// CleanRequest selects a missing-value strategy for a session's table.
// Method is "dropna" or "fillna"; Column narrows the operation to one
// column, empty or "all" means the whole table. FillValue is required
// for "fillna".
type CleanRequest struct {
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
	Column    string `json:"column,omitempty"`
	FillValue string `json:"fill_value,omitempty"`
}

// FilterRequest keeps the rows whose column matches the predicate.
// Operation is one of "gt", "lt", "eq" or "contains".
type FilterRequest struct {
	SessionID string `json:"session_id"`
	Column    string `json:"column"`
	Operation string `json:"operation"`
	Value     string `json:"value"`
}

// PlotRequest asks for a chart-ready series. ChartType is "bar",
// "line", "pie" or "scatter"; YAxis is optional for frequency charts.
type PlotRequest struct {
	SessionID string `json:"session_id"`
	XAxis     string `json:"x_axis"`
	YAxis     string `json:"y_axis,omitempty"`
	ChartType string `json:"chart_type"`
}

// PlotData is a chart-ready series. Labels are strings for grouped and
// frequency charts, raw x values for scatter points.
type PlotData struct {
	Labels []interface{} `json:"labels"`
	Values []float64     `json:"values"`
	Label  string        `json:"label"`
}

// ColumnStats carries the descriptive statistics of one numeric column.
// The field keys mirror a dataframe describe() record.
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

// SessionStats reports the server's session-store counters.
type SessionStats struct {
	Active  int   `json:"active"`
	Created int64 `json:"created"`
	Expired int64 `json:"expired"`
	Evicted int64 `json:"evicted"`
	Deleted int64 `json:"deleted"`
}

// ServerStatus is the /status payload.
type ServerStatus struct {
	Status   string       `json:"status"`
	Server   string       `json:"server"`
	Sessions SessionStats `json:"sessions"`
}

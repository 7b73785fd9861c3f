package http

import "github.com/gear6io/sift/server/tabular"

// CleanRequest mirrors the /clean payload.
type CleanRequest struct {
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
	Column    string `json:"column,omitempty"`
	FillValue string `json:"fill_value,omitempty"`
}

// FilterRequest mirrors the /filter payload.
type FilterRequest struct {
	SessionID string `json:"session_id"`
	Column    string `json:"column"`
	Operation string `json:"operation"`
	Value     string `json:"value"`
}

// PlotRequest mirrors the /plot payload.
type PlotRequest struct {
	SessionID string `json:"session_id"`
	XAxis     string `json:"x_axis"`
	YAxis     string `json:"y_axis,omitempty"`
	ChartType string `json:"chart_type"`
}

// TableResponse is the session snapshot returned by upload, clean and
// filter: the handle, the source filename and the table summary as one
// flat object.
type TableResponse struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	*tabular.Summary
}

// ErrorBody carries the code and human-readable message of a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform JSON envelope for failures.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

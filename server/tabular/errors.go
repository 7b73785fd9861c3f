package tabular

import (
	"github.com/gear6io/sift/pkg/errors"
)

// Package-specific error codes for tabular
var (
	ErrColumnNotFound        = errors.MustNewCode("tabular.column_not_found")
	ErrUnknownCleanMethod    = errors.MustNewCode("tabular.unknown_clean_method")
	ErrUnknownFilterOp       = errors.MustNewCode("tabular.unknown_filter_op")
	ErrUnknownChartType      = errors.MustNewCode("tabular.unknown_chart_type")
	ErrFillValueRequired     = errors.MustNewCode("tabular.fill_value_required")
	ErrFilterValueNotNumeric = errors.MustNewCode("tabular.filter_value_not_numeric")
	ErrYAxisRequired         = errors.MustNewCode("tabular.y_axis_required")
	ErrSumTextColumn         = errors.MustNewCode("tabular.sum_text_column")
	ErrScatterTextColumn     = errors.MustNewCode("tabular.scatter_text_column")
	ErrCSVParse              = errors.MustNewCode("tabular.csv_parse")
	ErrCSVEmpty              = errors.MustNewCode("tabular.csv_empty")
	ErrCSVWrite              = errors.MustNewCode("tabular.csv_write")
	ErrRowLimit              = errors.MustNewCode("tabular.row_limit")
	ErrInvalidSchema         = errors.MustNewCode("tabular.invalid_schema")
)

package tabular

// previewRows caps the number of rows included in a summary preview.
const previewRows = 5

// Summary is the shape report returned after upload and after every
// mutating operation.
type Summary struct {
	TotalRows     int                      `json:"total_rows"`
	TotalColumns  int                      `json:"total_columns"`
	Columns       []string                 `json:"columns"`
	MissingValues map[string]int           `json:"missing_values"`
	Preview       []map[string]interface{} `json:"preview"`
}

// Summarize reports the table's shape, per-column missing counts and a
// preview of the first rows. Preview cells carry their JSON rendering,
// so numbers stay numbers and missing cells show as empty strings.
func (t *Table) Summarize() *Summary {
	n := t.NumRows()
	if n > previewRows {
		n = previewRows
	}
	preview := make([]map[string]interface{}, 0, n)
	for ri := 0; ri < n; ri++ {
		row := make(map[string]interface{}, len(t.cols))
		for ci, c := range t.cols {
			row[c.Name] = t.rows[ri][ci].JSON()
		}
		preview = append(preview, row)
	}

	return &Summary{
		TotalRows:     t.NumRows(),
		TotalColumns:  t.NumCols(),
		Columns:       t.ColumnNames(),
		MissingValues: t.MissingCounts(),
		Preview:       preview,
	}
}

package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tbl := mustRead(t, "name,score\na,10\nb,\nc,30\n")

	s := tbl.Summarize()

	assert.Equal(t, 3, s.TotalRows)
	assert.Equal(t, 2, s.TotalColumns)
	assert.Equal(t, []string{"name", "score"}, s.Columns)
	assert.Equal(t, map[string]int{"name": 0, "score": 1}, s.MissingValues)

	require.Len(t, s.Preview, 3)
	assert.Equal(t, "a", s.Preview[0]["name"])
	assert.Equal(t, 10.0, s.Preview[0]["score"], "numeric cells preview as numbers")
	assert.Equal(t, "", s.Preview[1]["score"], "missing cells preview as empty strings")
}

func TestSummarizePreviewCap(t *testing.T) {
	tbl := mustRead(t, "v\n1\n2\n3\n4\n5\n6\n7\n")

	s := tbl.Summarize()
	assert.Equal(t, 7, s.TotalRows)
	assert.Len(t, s.Preview, 5)
	assert.Equal(t, 1.0, s.Preview[0]["v"])
	assert.Equal(t, 5.0, s.Preview[4]["v"])
}

func TestSummarizeEmptyTable(t *testing.T) {
	tbl := mustRead(t, "a,b\n")

	s := tbl.Summarize()
	assert.Equal(t, 0, s.TotalRows)
	assert.Equal(t, 2, s.TotalColumns)
	assert.NotNil(t, s.Preview, "preview marshals as [], not null")
	assert.Len(t, s.Preview, 0)
}

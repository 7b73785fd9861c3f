package parquet

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/gear6io/sift/server/tabular"
)

// Schema maps a table's columns onto an Arrow schema. Numeric columns
// become nullable float64 fields, text columns nullable utf8 fields.
// Missing cells surface as nulls on the Arrow side.
func Schema(t *tabular.Table) *arrow.Schema {
	fields := make([]arrow.Field, 0, t.NumCols())
	for _, col := range t.Columns() {
		var dataType arrow.DataType
		switch col.Kind {
		case tabular.KindNumeric:
			dataType = arrow.PrimitiveTypes.Float64
		default:
			dataType = arrow.BinaryTypes.String
		}
		fields = append(fields, arrow.Field{
			Name:     col.Name,
			Type:     dataType,
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil)
}

// buildRecord materializes the whole table as a single Arrow record.
func buildRecord(pool memory.Allocator, schema *arrow.Schema, t *tabular.Table) arrow.Record {
	arrays := make([]arrow.Array, 0, t.NumCols())
	for colIdx, field := range schema.Fields() {
		arrays = append(arrays, columnArray(pool, t, colIdx, field))
	}
	return array.NewRecord(schema, arrays, int64(t.NumRows()))
}

// columnArray converts a single table column to an Arrow array.
func columnArray(pool memory.Allocator, t *tabular.Table, colIdx int, field arrow.Field) arrow.Array {
	builder := array.NewBuilder(pool, field.Type)
	defer builder.Release()

	for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
		cell := t.Cell(rowIdx, colIdx)
		if cell.IsMissing() {
			builder.AppendNull()
			continue
		}

		switch b := builder.(type) {
		case *array.Float64Builder:
			if num, ok := cell.Float(); ok {
				b.Append(num)
			} else {
				b.AppendNull()
			}
		case *array.StringBuilder:
			b.Append(cell.String())
		}
	}

	return builder.NewArray()
}

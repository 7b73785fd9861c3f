// Package parquet serializes tables into Parquet files for download.
package parquet

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	goparquet "github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/gear6io/sift/pkg/errors"
	"github.com/gear6io/sift/server/tabular"
)

// Package-specific error codes for parquet writing
var (
	ErrCreateWriterFailed = errors.MustNewCode("parquet.create_writer_failed")
	ErrWriteFailed        = errors.MustNewCode("parquet.write_failed")
	ErrCloseFailed        = errors.MustNewCode("parquet.close_failed")
)

// Write serializes the table to w as a Parquet file with a single row
// group. A nil config falls back to DefaultConfig.
func Write(w io.Writer, t *tabular.Table, config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return err
	}

	codec, err := GetCompressionCodec(config.Compression)
	if err != nil {
		return err
	}

	pool := memory.NewGoAllocator()

	opts := []goparquet.WriterProperty{
		goparquet.WithCompression(codec),
		goparquet.WithAllocator(pool),
	}
	if requiresCompressionLevel(config.Compression) {
		opts = append(opts, goparquet.WithCompressionLevel(config.CompressionLevel))
	}
	props := goparquet.NewWriterProperties(opts...)

	schema := Schema(t)
	writer, err := pqarrow.NewFileWriter(schema, w, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return errors.New(ErrCreateWriterFailed, "failed to create parquet writer", err)
	}

	if t.NumRows() > 0 {
		record := buildRecord(pool, schema, t)
		defer record.Release()

		if err := writer.Write(record); err != nil {
			writer.Close()
			return errors.New(ErrWriteFailed, "failed to write parquet record", err)
		}
	}

	if err := writer.Close(); err != nil {
		return errors.New(ErrCloseFailed, "failed to close parquet writer", err)
	}

	return nil
}

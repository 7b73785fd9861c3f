package parquet

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/gear6io/sift/pkg/errors"
)

// Package-specific error codes for parquet compression
var (
	ErrUnsupportedCompression  = errors.MustNewCode("parquet.unsupported_compression")
	ErrInvalidCompressionLevel = errors.MustNewCode("parquet.invalid_compression_level")
)

// Config controls how tables are encoded on the way out.
type Config struct {
	Compression      string
	CompressionLevel int
}

// DefaultConfig returns the default encoding settings.
func DefaultConfig() *Config {
	return &Config{
		Compression:      "zstd",
		CompressionLevel: 3,
	}
}

// Validate checks the compression settings.
func (c *Config) Validate() error {
	if _, err := GetCompressionCodec(c.Compression); err != nil {
		return err
	}
	return validateCompressionLevel(c.Compression, c.CompressionLevel)
}

// GetCompressionCodec converts a compression name to a Parquet compression codec
func GetCompressionCodec(compression string) (compress.Compression, error) {
	switch strings.ToLower(compression) {
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip", "gz":
		return compress.Codecs.Gzip, nil
	case "brotli":
		return compress.Codecs.Brotli, nil
	case "lz4":
		return compress.Codecs.Lz4, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	default:
		return compress.Codecs.Uncompressed, errors.New(ErrUnsupportedCompression, "unsupported compression type", nil).AddContext("compression", compression)
	}
}

// validateCompressionLevel checks if compression level is valid for the algorithm
func validateCompressionLevel(compression string, level int) error {
	switch strings.ToLower(compression) {
	case "none", "uncompressed", "snappy", "lz4":
		// These don't use compression levels
		return nil
	case "gzip", "gz":
		if level < 1 || level > 9 {
			return errors.New(ErrInvalidCompressionLevel, "gzip compression level must be between 1 and 9", nil).AddContext("level", fmt.Sprintf("%d", level))
		}
	case "brotli":
		if level < 1 || level > 11 {
			return errors.New(ErrInvalidCompressionLevel, "brotli compression level must be between 1 and 11", nil).AddContext("level", fmt.Sprintf("%d", level))
		}
	case "zstd":
		if level < 1 || level > 22 {
			return errors.New(ErrInvalidCompressionLevel, "zstd compression level must be between 1 and 22", nil).AddContext("level", fmt.Sprintf("%d", level))
		}
	}
	return nil
}

// requiresCompressionLevel checks if a compression algorithm uses compression levels
func requiresCompressionLevel(compression string) bool {
	switch strings.ToLower(compression) {
	case "gzip", "gz", "brotli", "zstd":
		return true
	default:
		return false
	}
}

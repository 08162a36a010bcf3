// Package columnar encodes table slices as Parquet files.
package columnar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"orders_etl/internal/domain/entities"
	"orders_etl/internal/usecase/interfaces"
)

const (
	ContentTypeParquet = "application/vnd.apache.parquet"
	ExtensionParquet   = ".parquet"
)

var ErrNoColumns = errors.New("table has no columns")

var _ interfaces.IColumnarEncoder = (*ParquetEncoder)(nil)

// ParquetEncoder writes one Snappy-compressed Parquet file per table. Files
// are staged in a scratch directory (/tmp on Lambda) and read back whole.
type ParquetEncoder struct {
	tempDir     string
	parallelism int64
}

type ParquetEncoderOption func(*ParquetEncoder)

// WithTempDir sets the scratch directory. Empty means os.TempDir().
func WithTempDir(dir string) ParquetEncoderOption {
	return func(e *ParquetEncoder) {
		e.tempDir = dir
	}
}

// WithParallelism sets the number of goroutines marshalling rows.
func WithParallelism(n int64) ParquetEncoderOption {
	return func(e *ParquetEncoder) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

func NewParquetEncoder(opts ...ParquetEncoderOption) *ParquetEncoder {
	e := &ParquetEncoder{parallelism: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *ParquetEncoder) ContentType() string {
	return ContentTypeParquet
}

func (e *ParquetEncoder) Extension() string {
	return ExtensionParquet
}

func (e *ParquetEncoder) Encode(table entities.Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, ErrNoColumns
	}
	cols := inferColumns(table)
	schema, err := schemaJSON(cols)
	if err != nil {
		return nil, fmt.Errorf("build parquet schema: %w", err)
	}

	dir, err := os.MkdirTemp(e.tempDir, "orders-etl-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "part"+ExtensionParquet)

	if err := e.writeFile(name, schema, table, cols); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

func (e *ParquetEncoder) writeFile(name, schema string, table entities.Table, cols []column) error {
	fw, err := local.NewLocalFileWriter(name)
	if err != nil {
		return fmt.Errorf("open parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewJSONWriter(schema, fw, e.parallelism)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, row := range table.Rows {
		line, err := rowJSON(row, cols)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if err := pw.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finish parquet file: %w", err)
	}
	return nil
}

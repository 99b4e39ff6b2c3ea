// Package export writes recorded job results to Parquet files.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	storage "github.com/tigerroll/flclient/pkg/flclient/adapter/storage"
	storageconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/config"
	localstorage "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/local"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	repository "github.com/tigerroll/flclient/pkg/flclient/core/domain/repository"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

const (
	moduleName = "ParquetResultExporter"

	// ContentType is the media type used when uploading an export.
	ContentType = "application/vnd.apache.parquet"

	// writerParallelism is the number of goroutines parquet-go uses per flush.
	writerParallelism = 1
)

// ResultRow is the Parquet row written for each ResultRecord.
type ResultRow struct {
	ID         string `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Kind       string `parquet:"name=kind,type=BYTE_ARRAY,convertedtype=UTF8"`
	ModelName  string `parquet:"name=model_name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Count      int64  `parquet:"name=count,type=INT64"`
	ResultCode int64  `parquet:"name=result_code,type=INT64"`
	RecordedAt int64  `parquet:"name=recorded_at,type=INT64,convertedtype=TIMESTAMP_MILLIS"`
}

// NewResultRow converts a record to its Parquet row.
func NewResultRow(r *model.ResultRecord) ResultRow {
	return ResultRow{
		ID:         r.ID,
		Kind:       r.Kind.String(),
		ModelName:  r.ModelName,
		Count:      int64(r.Count),
		ResultCode: int64(r.ResultCode),
		RecordedAt: r.RecordedAt.UnixMilli(),
	}
}

// ParquetResultExporter dumps every record of a ResultRepository as Parquet.
type ParquetResultExporter struct {
	repo        repository.ResultRepository
	compression parquet.CompressionCodec
}

// NewParquetResultExporter creates an exporter. compressionType is "SNAPPY"
// (the default when empty), "GZIP" or "NONE".
func NewParquetResultExporter(repo repository.ResultRepository, compressionType string) (*ParquetResultExporter, error) {
	codec, err := GetCompressionCodec(compressionType)
	if err != nil {
		return nil, exception.NewCallbackError(moduleName, fmt.Sprintf("invalid compression type '%s'", compressionType), err)
	}
	return &ParquetResultExporter{repo: repo, compression: codec}, nil
}

// GetCompressionCodec maps a compression name to the Parquet codec.
func GetCompressionCodec(compressionType string) (parquet.CompressionCodec, error) {
	switch strings.ToUpper(compressionType) {
	case "", "SNAPPY":
		return parquet.CompressionCodec_SNAPPY, nil
	case "GZIP":
		return parquet.CompressionCodec_GZIP, nil
	case "NONE", "UNCOMPRESSED":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	default:
		return parquet.CompressionCodec_UNCOMPRESSED, fmt.Errorf("unsupported compression type: %s", compressionType)
	}
}

// Export writes every record to w and returns the number of rows written.
// Nothing is written when the repository is empty.
func (e *ParquetResultExporter) Export(ctx context.Context, w io.Writer) (int, error) {
	records, err := e.repo.FindAllResults(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	buf := new(bytes.Buffer)
	pw, err := writer.NewParquetWriterFromWriter(buf, new(ResultRow), writerParallelism)
	if err != nil {
		return 0, exception.NewCallbackError(moduleName, "failed to create parquet writer", err)
	}
	pw.CompressionType = e.compression

	for _, r := range records {
		if err := pw.Write(NewResultRow(r)); err != nil {
			return 0, exception.NewCallbackError(moduleName, fmt.Sprintf("failed to write record '%s'", r.ID), err)
		}
	}

	if err := writeStop(pw); err != nil {
		return 0, err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return 0, exception.NewCallbackError(moduleName, "failed to write parquet output", err)
	}
	return len(records), nil
}

// ExportTo uploads every record to bucket/objectName on conn. An empty bucket
// selects the connection's default. Nothing is uploaded when the repository is empty.
func (e *ParquetResultExporter) ExportTo(ctx context.Context, conn storage.StorageConnection, bucket, objectName string) (int, error) {
	buf := new(bytes.Buffer)
	n, err := e.Export(ctx, buf)
	if err != nil || n == 0 {
		return n, err
	}
	if err := conn.Upload(ctx, bucket, objectName, buf, ContentType); err != nil {
		return 0, exception.NewCallbackError(moduleName, fmt.Sprintf("failed to upload '%s' to %s storage '%s'", objectName, conn.Type(), conn.Name()), err)
	}
	logger.Infof("%s: exported %d result records to '%s' (%s storage '%s').", moduleName, n, objectName, conn.Type(), conn.Name())
	return n, nil
}

// ExportFile writes every record to path through a local storage connection
// rooted at the parent directory. No file is created when the repository is empty.
func (e *ParquetResultExporter) ExportFile(ctx context.Context, path string) (int, error) {
	buf := new(bytes.Buffer)
	n, err := e.Export(ctx, buf)
	if err != nil || n == 0 {
		return n, err
	}
	conn, err := localstorage.NewLocalAdapter(storageconfig.StorageConfig{
		Type:    localstorage.ProviderType,
		BaseDir: filepath.Dir(path),
	}, path)
	if err != nil {
		return 0, exception.NewCallbackError(moduleName, fmt.Sprintf("failed to prepare directory for '%s'", path), err)
	}
	defer conn.Close()
	if err := conn.Upload(ctx, "", filepath.Base(path), buf, ContentType); err != nil {
		return 0, exception.NewCallbackError(moduleName, fmt.Sprintf("failed to write '%s'", path), err)
	}
	logger.Infof("%s: exported %d result records to '%s'.", moduleName, n, path)
	return n, nil
}

// writeStop finalizes the file. The parquet library can panic on malformed
// input, so the panic is turned into an error.
func writeStop(pw *writer.ParquetWriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("%s: recovered from panic during WriteStop: %v", moduleName, r)
			err = exception.NewCallbackError(moduleName, fmt.Sprintf("parquet writer panicked during WriteStop: %v", r), nil)
		}
	}()
	if err := pw.WriteStop(); err != nil {
		return exception.NewCallbackError(moduleName, "failed to finalize parquet file", err)
	}
	return nil
}

// Package repository defines persistence for recorded job results.
package repository

import (
	"context"
	"errors"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// ErrResultRecordExists is returned when a record with the same ID was already saved.
var ErrResultRecordExists = errors.New("result record already exists")

// ResultRepository stores ResultRecords.
type ResultRepository interface {
	// SaveResult persists a new record.
	SaveResult(ctx context.Context, record *model.ResultRecord) error

	// FindResultsByModel returns every record for modelName ordered by RecordedAt.
	// An unknown model yields an empty slice.
	FindResultsByModel(ctx context.Context, modelName string) ([]*model.ResultRecord, error)

	// FindAllResults returns every record ordered by RecordedAt.
	FindAllResults(ctx context.Context) ([]*model.ResultRecord, error)

	// Close releases resources (such as database connections) used by the repository.
	Close() error
}

// Package sql provides a GORM implementation of the ResultRepository interface.
package sql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	repository "github.com/tigerroll/flclient/pkg/flclient/core/domain/repository"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

const moduleName = "SQLResultRepository"

// SQLResultRepository stores ResultRecords in the flclient_result_records table.
type SQLResultRepository struct {
	db *gorm.DB
}

// NewSQLResultRepository creates a repository on db and migrates its table.
func NewSQLResultRepository(db *gorm.DB) (*SQLResultRepository, error) {
	if err := db.AutoMigrate(&ResultRecordEntity{}); err != nil {
		return nil, exception.NewCallbackError(moduleName, "failed to migrate result record table", err)
	}
	logger.Debugf("%s: table '%s' is ready.", moduleName, ResultRecordEntity{}.TableName())
	return &SQLResultRepository{db: db}, nil
}

// SaveResult inserts record. An existing ID yields repository.ErrResultRecordExists.
func (r *SQLResultRepository) SaveResult(ctx context.Context, record *model.ResultRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ResultRecordEntity{}).Where("id = ?", record.ID).Count(&count).Error; err != nil {
			return exception.NewCallbackError(moduleName, fmt.Sprintf("failed to check result record '%s'", record.ID), err)
		}
		if count > 0 {
			return repository.ErrResultRecordExists
		}
		if err := tx.Create(toEntity(record)).Error; err != nil {
			return exception.NewCallbackError(moduleName, fmt.Sprintf("failed to save result record '%s'", record.ID), err)
		}
		return nil
	})
}

// FindResultsByModel returns the records for modelName ordered by RecordedAt.
func (r *SQLResultRepository) FindResultsByModel(ctx context.Context, modelName string) ([]*model.ResultRecord, error) {
	var entities []ResultRecordEntity
	err := r.db.WithContext(ctx).
		Where("model_name = ?", modelName).
		Order("recorded_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, exception.NewCallbackError(moduleName, fmt.Sprintf("failed to find result records for model '%s'", modelName), err)
	}
	return toModels(entities), nil
}

// FindAllResults returns every record ordered by RecordedAt.
func (r *SQLResultRepository) FindAllResults(ctx context.Context) ([]*model.ResultRecord, error) {
	var entities []ResultRecordEntity
	if err := r.db.WithContext(ctx).Order("recorded_at ASC").Find(&entities).Error; err != nil {
		return nil, exception.NewCallbackError(moduleName, "failed to find result records", err)
	}
	return toModels(entities), nil
}

// Close closes the underlying database connection.
func (r *SQLResultRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repository.ResultRepository = (*SQLResultRepository)(nil)

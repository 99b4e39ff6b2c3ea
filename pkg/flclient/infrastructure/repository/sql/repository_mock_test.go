package sql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	repository "github.com/tigerroll/flclient/pkg/flclient/core/domain/repository"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
)

// setupMockRepository builds a repository over sqlmock without running migrations.
func setupMockRepository(t *testing.T) (*SQLResultRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	return &SQLResultRepository{db: gdb}, mock
}

var countQuery = regexp.QuoteMeta("SELECT count(*) FROM `flclient_result_records` WHERE id = ?")

func TestSaveResultCountError(t *testing.T) {
	repo, mock := setupMockRepository(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(countQuery).WithArgs("it-1").WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.SaveResult(context.Background(), model.NewIterationRecord("it-1", model.IterationResult{ModelName: "lenet", IterationSeq: 1}, time.Now()))
	require.Error(t, err)
	assert.True(t, exception.IsCallbackError(err))
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveResultExistingID(t *testing.T) {
	repo, mock := setupMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(countQuery).WithArgs("dup").WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.SaveResult(context.Background(), model.NewJobRecord("dup", model.JobResult{ModelName: "lenet"}, time.Now()))
	assert.ErrorIs(t, err, repository.ErrResultRecordExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveResultInsertError(t *testing.T) {
	repo, mock := setupMockRepository(t)
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(countQuery).WithArgs("it-2").WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `flclient_result_records`")).WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.SaveResult(context.Background(), model.NewIterationRecord("it-2", model.IterationResult{ModelName: "lenet", IterationSeq: 2}, time.Now()))
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllResultsQueryError(t *testing.T) {
	repo, mock := setupMockRepository(t)
	boom := errors.New("timeout")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `flclient_result_records` ORDER BY recorded_at ASC")).WillReturnError(boom)

	records, err := repo.FindAllResults(context.Background())
	assert.Nil(t, records)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindResultsByModelRows(t *testing.T) {
	repo, mock := setupMockRepository(t)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "kind", "model_name", "count", "result_code", "recorded_at"}).
		AddRow("it-1", "iteration_finished", "lenet", 3, 0, at)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `flclient_result_records` WHERE model_name = ? ORDER BY recorded_at ASC")).
		WithArgs("lenet").
		WillReturnRows(rows)

	records, err := repo.FindResultsByModel(context.Background(), "lenet")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.EventKindIterationFinished, records[0].Kind)
	assert.Equal(t, 3, records[0].Count)
	assert.True(t, records[0].RecordedAt.Equal(at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// MockResultRecorder is a mock implementation of the metrics.ResultRecorder interface.
type MockResultRecorder struct {
	mock.Mock
}

// RecordIterationFinished mocks the RecordIterationFinished method.
func (m *MockResultRecorder) RecordIterationFinished(ctx context.Context, result *model.IterationResult) {
	m.Called(ctx, result)
}

// RecordJobFinished mocks the RecordJobFinished method.
func (m *MockResultRecorder) RecordJobFinished(ctx context.Context, result *model.JobResult) {
	m.Called(ctx, result)
}

// MockNotifier is a mock implementation of the ports.Notifier interface.
type MockNotifier struct {
	mock.Mock
}

// NotifyJobFinished mocks the NotifyJobFinished method.
func (m *MockNotifier) NotifyJobFinished(ctx context.Context, result *model.JobResult) {
	m.Called(ctx, result)
}

// MockResultRepository is a mock implementation of the repository.ResultRepository interface.
type MockResultRepository struct {
	mock.Mock
}

// SaveResult mocks the SaveResult method.
func (m *MockResultRepository) SaveResult(ctx context.Context, record *model.ResultRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// FindResultsByModel mocks the FindResultsByModel method.
func (m *MockResultRepository) FindResultsByModel(ctx context.Context, modelName string) ([]*model.ResultRecord, error) {
	args := m.Called(ctx, modelName)
	if records, ok := args.Get(0).([]*model.ResultRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindAllResults mocks the FindAllResults method.
func (m *MockResultRepository) FindAllResults(ctx context.Context) ([]*model.ResultRecord, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]*model.ResultRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// Close mocks the Close method.
func (m *MockResultRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

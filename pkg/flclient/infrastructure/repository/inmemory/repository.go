// Package inmemory provides an in-memory implementation of the ResultRepository interface,
// suitable for testing and for runs where history does not need to survive the process.
package inmemory

import (
	"context"
	"sort"
	"sync"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	repository "github.com/tigerroll/flclient/pkg/flclient/core/domain/repository"
)

// InMemoryResultRepository keeps ResultRecords in maps.
type InMemoryResultRepository struct {
	records map[string]*model.ResultRecord
	byModel map[string][]string // model name -> record IDs in insertion order
	order   []string
	mu      sync.RWMutex
}

// NewInMemoryResultRepository creates an empty InMemoryResultRepository.
func NewInMemoryResultRepository() *InMemoryResultRepository {
	return &InMemoryResultRepository{
		records: make(map[string]*model.ResultRecord),
		byModel: make(map[string][]string),
	}
}

// SaveResult stores a copy of record.
func (r *InMemoryResultRepository) SaveResult(ctx context.Context, record *model.ResultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[record.ID]; exists {
		return repository.ErrResultRecordExists
	}
	stored := *record
	r.records[record.ID] = &stored
	r.byModel[record.ModelName] = append(r.byModel[record.ModelName], record.ID)
	r.order = append(r.order, record.ID)
	return nil
}

// FindResultsByModel returns copies of the records for modelName ordered by RecordedAt.
// Records with equal timestamps keep their insertion order.
func (r *InMemoryResultRepository) FindResultsByModel(ctx context.Context, modelName string) ([]*model.ResultRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(r.byModel[modelName]), nil
}

// FindAllResults returns copies of every record ordered by RecordedAt.
func (r *InMemoryResultRepository) FindAllResults(ctx context.Context) ([]*model.ResultRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(r.order), nil
}

// collect copies the records for ids and sorts them stably by RecordedAt.
// Callers hold the read lock.
func (r *InMemoryResultRepository) collect(ids []string) []*model.ResultRecord {
	results := make([]*model.ResultRecord, 0, len(ids))
	for _, id := range ids {
		rec := *r.records[id]
		results = append(results, &rec)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RecordedAt.Before(results[j].RecordedAt)
	})
	return results
}

// Close releases resources used by the repository.
// The in-memory repository holds no external resources, so this method always returns nil.
func (r *InMemoryResultRepository) Close() error {
	return nil
}

var _ repository.ResultRepository = (*InMemoryResultRepository)(nil)

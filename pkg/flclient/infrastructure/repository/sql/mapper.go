package sql

import model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"

func toEntity(r *model.ResultRecord) *ResultRecordEntity {
	return &ResultRecordEntity{
		ID:         r.ID,
		Kind:       r.Kind.String(),
		ModelName:  r.ModelName,
		Count:      r.Count,
		ResultCode: r.ResultCode,
		RecordedAt: r.RecordedAt.UTC(),
	}
}

func toModel(e *ResultRecordEntity) *model.ResultRecord {
	return &model.ResultRecord{
		ID:         e.ID,
		Kind:       model.EventKind(e.Kind),
		ModelName:  e.ModelName,
		Count:      e.Count,
		ResultCode: e.ResultCode,
		RecordedAt: e.RecordedAt,
	}
}

func toModels(entities []ResultRecordEntity) []*model.ResultRecord {
	results := make([]*model.ResultRecord, 0, len(entities))
	for i := range entities {
		results = append(results, toModel(&entities[i]))
	}
	return results
}

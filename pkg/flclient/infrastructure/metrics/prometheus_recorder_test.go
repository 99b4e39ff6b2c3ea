package metrics_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	metrics "github.com/tigerroll/flclient/pkg/flclient/infrastructure/metrics"
)

func TestRecordIterationFinished(t *testing.T) {
	r := metrics.NewPrometheusRecorder()
	ctx := context.Background()

	r.RecordIterationFinished(ctx, &model.IterationResult{ModelName: "lenet", IterationSeq: 1, ResultCode: 0})
	r.RecordIterationFinished(ctx, &model.IterationResult{ModelName: "lenet", IterationSeq: 2, ResultCode: 0})
	r.RecordIterationFinished(ctx, &model.IterationResult{ModelName: "lenet", IterationSeq: 3, ResultCode: -1})
	r.RecordIterationFinished(ctx, nil)

	expected := `
# HELP flclient_iteration_finished_total Total number of finished iterations by model and result code.
# TYPE flclient_iteration_finished_total counter
flclient_iteration_finished_total{model_name="lenet",result_code="-1"} 1
flclient_iteration_finished_total{model_name="lenet",result_code="0"} 2
# HELP flclient_iteration_seq Sequence number of the most recently finished iteration.
# TYPE flclient_iteration_seq gauge
flclient_iteration_seq{model_name="lenet"} 3
`
	err := testutil.GatherAndCompare(r.GetRegistry(), strings.NewReader(expected),
		"flclient_iteration_finished_total", "flclient_iteration_seq")
	require.NoError(t, err)
}

func TestRecordJobFinished(t *testing.T) {
	r := metrics.NewPrometheusRecorder()

	r.RecordJobFinished(context.Background(), &model.JobResult{ModelName: "resnet", IterationCount: 10, ResultCode: 0})

	expected := `
# HELP flclient_job_finished_total Total number of finished jobs by model and result code.
# TYPE flclient_job_finished_total counter
flclient_job_finished_total{model_name="resnet",result_code="0"} 1
# HELP flclient_job_iteration_count Iteration count reported by the most recently finished job.
# TYPE flclient_job_iteration_count gauge
flclient_job_iteration_count{model_name="resnet"} 10
`
	err := testutil.GatherAndCompare(r.GetRegistry(), strings.NewReader(expected),
		"flclient_job_finished_total", "flclient_job_iteration_count")
	require.NoError(t, err)
}

func TestRegistryIsolation(t *testing.T) {
	a := metrics.NewPrometheusRecorder()
	b := metrics.NewPrometheusRecorder()

	a.RecordJobFinished(context.Background(), &model.JobResult{ModelName: "m", IterationCount: 1})

	count, err := testutil.GatherAndCount(b.GetRegistry(), "flclient_job_finished_total")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Same(t, a.GetRegistry(), metrics.NewGatherer(a))
}

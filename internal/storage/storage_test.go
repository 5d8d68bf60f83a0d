package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSpan(traceID, spanID string, start, end int64, hasParent bool, parentID, service string) model.Span {
	return model.Span{
		SpanID:            spanID,
		TraceID:           traceID,
		ParentSpanID:      parentID,
		HasParent:         hasParent,
		Name:              "op",
		Kind:              model.SpanKindServer,
		StartTimeUnixNano: start,
		EndTimeUnixNano:   end,
		Attributes:        model.NewAttributes(),
		Status:            model.Status{Code: model.StatusCodeOk},
		ServiceName:       service,
		HasServiceName:    service != "",
	}
}

func TestSchemaInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, initSchema(ctx, s))
	}
}

func TestInsertAndGetTraceByID(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	span := sampleSpan("trace1", "span1", 100, 500, false, "", "svc-A")
	require.NoError(t, s.InsertSpan(ctx, span))

	trace, err := s.GetTraceByID(ctx, "trace1")
	require.NoError(t, err)
	require.Len(t, trace.Spans, 1)
	assert.Equal(t, "span1", trace.Spans[0].SpanID)
}

func TestGetTraceByIDNotFound(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	_, err := s.GetTraceByID(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInsertSpanDuplicatePrimaryKeyRejected(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	span := sampleSpan("trace1", "span1", 100, 500, false, "", "svc-A")
	require.NoError(t, s.InsertSpan(ctx, span))
	err := s.InsertSpan(ctx, span)
	assert.Error(t, err)

	count, err := s.CountSpans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCountSpansMatchesDistinctInserts(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	for i := 0; i < 5; i++ {
		span := sampleSpan("trace1", fmt.Sprintf("span-%d", i), int64(i), int64(i+1), false, "", "svc-A")
		require.NoError(t, s.InsertSpan(ctx, span))
	}
	count, err := s.CountSpans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestSpansOrderedByStartTime(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.InsertSpan(ctx, sampleSpan("t1", "s2", 300, 400, false, "", "svc-A")))
	require.NoError(t, s.InsertSpan(ctx, sampleSpan("t1", "s1", 100, 200, false, "", "svc-A")))

	trace, err := s.GetTraceByID(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, trace.Spans, 2)
	assert.Equal(t, "s1", trace.Spans[0].SpanID)
	assert.Equal(t, "s2", trace.Spans[1].SpanID)
}

func TestListTracesFiltersByService(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.InsertSpan(ctx, sampleSpan("t1", "s1", 100, 200, false, "", "svc-A")))
	require.NoError(t, s.InsertSpan(ctx, sampleSpan("t2", "s2", 300, 400, false, "", "svc-B")))

	traces, err := s.ListTraces(ctx, "svc-A", true, 100)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "t1", traces[0].TraceID)
}

func TestListTracesMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.InsertSpan(ctx, sampleSpan("old", "s1", 100, 200, false, "", "svc-A")))
	require.NoError(t, s.InsertSpan(ctx, sampleSpan("new", "s2", 900, 1000, false, "", "svc-A")))

	traces, err := s.ListTraces(ctx, "", false, 100)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, "new", traces[0].TraceID)
	assert.Equal(t, "old", traces[1].TraceID)
}

func TestInsertAndListLogs(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	log := model.Log{TimeUnixNano: 1, Severity: model.SeverityInfo, Body: "hello", Attributes: model.NewAttributes(), ServiceName: "svc-A", HasServiceName: true}
	require.NoError(t, s.InsertLog(ctx, log))

	count, err := s.CountLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	logs, err := s.ListLogs(ctx, "svc-A", true, 0, false, 100)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "hello", logs[0].Body)
}

func TestInsertAndCountMetrics(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	m1 := model.Metric{Name: "cpu", Type: model.MetricTypeGauge, Point: model.MetricDataPoint{Value: 0.25, Attributes: model.NewAttributes()}}
	m2 := model.Metric{Name: "cpu", Type: model.MetricTypeGauge, Point: model.MetricDataPoint{Value: 0.75, Attributes: model.NewAttributes()}}
	require.NoError(t, s.InsertMetric(ctx, m1))
	require.NoError(t, s.InsertMetric(ctx, m2))

	count, err := s.CountMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCloneSharesState(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	clone := s.Clone()

	require.NoError(t, s.InsertSpan(ctx, sampleSpan("t1", "s1", 1, 2, false, "", "svc-A")))

	count, err := clone.CountSpans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "clone must observe writes made through the original")
}


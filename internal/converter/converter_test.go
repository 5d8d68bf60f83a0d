package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"glint/internal/model"
)

func strAttr(key, value string) *commonpb.KeyValue {
	return &commonpb.KeyValue{
		Key:   key,
		Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: value}},
	}
}

func resourceWithService(name string) *resourcepb.Resource {
	return &resourcepb.Resource{Attributes: []*commonpb.KeyValue{strAttr("service.name", name)}}
}

func TestConvertResourceSpansParentIDPresence(t *testing.T) {
	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{{
			Resource: resourceWithService("svc-A"),
			ScopeSpans: []*tracepb.ScopeSpans{{
				Spans: []*tracepb.Span{
					{
						TraceId:      []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
						SpanId:       []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
						ParentSpanId: nil,
						Name:         "root",
						Kind:         tracepb.Span_SPAN_KIND_SERVER,
						StartTimeUnixNano: 1_000_000_000,
						EndTimeUnixNano:   1_100_000_000,
						Status:            &tracepb.Status{Code: tracepb.Status_STATUS_CODE_OK},
					},
					{
						TraceId:      []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
						SpanId:       []byte{0xaa, 0xbb, 0xcc, 0xdd, 0x01, 0x02, 0x03, 0x04},
						ParentSpanId: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
						Name:         "child",
						Kind:         tracepb.Span_SPAN_KIND_INTERNAL,
						StartTimeUnixNano: 1_010_000_000,
						EndTimeUnixNano:   1_090_000_000,
						Status:            &tracepb.Status{Code: tracepb.Status_STATUS_CODE_ERROR, Message: "boom"},
					},
				},
			}},
		}},
	}

	spans := ConvertResourceSpans(req)
	require.Len(t, spans, 2)

	root := spans[0]
	assert.False(t, root.HasParent)
	assert.Equal(t, "", root.ParentSpanID)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", root.TraceID)
	assert.Equal(t, "svc-A", root.ServiceName)
	assert.Equal(t, int64(100_000_000), root.DurationNanos())

	child := spans[1]
	assert.True(t, child.HasParent)
	assert.Equal(t, "0102030405060708", child.ParentSpanID)
	assert.Equal(t, model.StatusCodeError, child.Status.Code)
	assert.Equal(t, "boom", child.Status.Message)
}

func TestConvertResourceSpansEmptyRequest(t *testing.T) {
	spans := ConvertResourceSpans(&coltracepb.ExportTraceServiceRequest{})
	assert.Empty(t, spans)
}

func TestConvertResourceSpansUnknownKindFoldsToUnspecified(t *testing.T) {
	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{{
			ScopeSpans: []*tracepb.ScopeSpans{{
				Spans: []*tracepb.Span{{
					TraceId: []byte{0x01},
					SpanId:  []byte{0x01},
					Kind:    tracepb.Span_SpanKind(99),
				}},
			}},
		}},
	}
	spans := ConvertResourceSpans(req)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, int(spans[0].Kind))
}

func TestConvertResourceLogsSeverityAndBody(t *testing.T) {
	req := &collogspb.ExportLogsServiceRequest{
		ResourceLogs: []*logspb.ResourceLogs{{
			Resource: resourceWithService("svc-B"),
			ScopeLogs: []*logspb.ScopeLogs{{
				LogRecords: []*logspb.LogRecord{{
					TimeUnixNano:   2_000_000_000,
					SeverityNumber: logspb.SeverityNumber(17),
					Body:           &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: "hello"}},
					TraceId:        []byte{0x01, 0x02},
					SpanId:         []byte{0x03, 0x04},
				}},
			}},
		}},
	}

	logs := ConvertResourceLogs(req)
	require.Len(t, logs, 1)
	l := logs[0]
	assert.Equal(t, "svc-B", l.ServiceName)
	assert.Equal(t, "hello", l.Body)
	assert.True(t, l.IsError())
	assert.True(t, l.IsCorrelated())
}

func TestConvertResourceLogsBodyCoercion(t *testing.T) {
	req := &collogspb.ExportLogsServiceRequest{
		ResourceLogs: []*logspb.ResourceLogs{{
			ScopeLogs: []*logspb.ScopeLogs{{
				LogRecords: []*logspb.LogRecord{
					{Body: &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: 42}}},
					{Body: &commonpb.AnyValue{Value: &commonpb.AnyValue_KvlistValue{KvlistValue: &commonpb.KeyValueList{
						Values: []*commonpb.KeyValue{strAttr("a", "b")},
					}}}},
					{Body: &commonpb.AnyValue{Value: &commonpb.AnyValue_ArrayValue{ArrayValue: &commonpb.ArrayValue{
						Values: []*commonpb.AnyValue{
							{Value: &commonpb.AnyValue_IntValue{IntValue: 1}},
							{Value: &commonpb.AnyValue_IntValue{IntValue: 2}},
						},
					}}}},
				},
			}},
		}},
	}
	logs := ConvertResourceLogs(req)
	require.Len(t, logs, 3)
	assert.Equal(t, "42", logs[0].Body)
	assert.Equal(t, "<kvlist unsupported>", logs[1].Body)
	assert.Equal(t, "[1,2]", logs[2].Body)
}

func TestConvertAttributesDropsKvlist(t *testing.T) {
	kvs := []*commonpb.KeyValue{
		strAttr("keep", "value"),
		{Key: "drop", Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_KvlistValue{KvlistValue: &commonpb.KeyValueList{}}}},
	}
	attrs := convertAttributes(kvs)
	_, ok := attrs.GetString("keep")
	assert.True(t, ok)
	_, present := attrs["drop"]
	assert.False(t, present)
}

func TestConvertResourceMetricsGauge(t *testing.T) {
	req := &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{{
			Resource: resourceWithService("svc-C"),
			ScopeMetrics: []*metricspb.ScopeMetrics{{
				Metrics: []*metricspb.Metric{{
					Name: "cpu",
					Data: &metricspb.Metric_Gauge{Gauge: &metricspb.Gauge{
						DataPoints: []*metricspb.NumberDataPoint{
							{Value: &metricspb.NumberDataPoint_AsDouble{AsDouble: 0.25}, TimeUnixNano: 1},
							{Value: &metricspb.NumberDataPoint_AsDouble{AsDouble: 0.75}, TimeUnixNano: 2},
						},
					}},
				}},
			}},
		}},
	}

	metrics := ConvertResourceMetrics(req)
	require.Len(t, metrics, 2)
	for _, m := range metrics {
		assert.Equal(t, "cpu", m.Name)
		assert.Equal(t, "svc-C", m.ServiceName)
		assert.Equal(t, model.MetricTypeGauge, m.Type)
		assert.Equal(t, model.AggregationUnspecified, m.Temporality)
	}
	assert.Equal(t, 0.25, metrics[0].Point.Value)
	assert.Equal(t, 0.75, metrics[1].Point.Value)
}

func TestConvertResourceMetricsHistogramSumOrCount(t *testing.T) {
	sum := 42.0
	req := &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{{
			ScopeMetrics: []*metricspb.ScopeMetrics{{
				Metrics: []*metricspb.Metric{{
					Name: "latency",
					Data: &metricspb.Metric_Histogram{Histogram: &metricspb.Histogram{
						AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
						DataPoints: []*metricspb.HistogramDataPoint{
							{Sum: &sum, Count: 10},
							{Count: 5},
						},
					}},
				}},
			}},
		}},
	}
	metrics := ConvertResourceMetrics(req)
	require.Len(t, metrics, 2)
	assert.Equal(t, 42.0, metrics[0].Point.Value)
	assert.Equal(t, 5.0, metrics[1].Point.Value)
	assert.Equal(t, model.AggregationCumulative, metrics[0].Temporality)
}

func TestConvertResourceMetricsSummaryCollapsesToSum(t *testing.T) {
	req := &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{{
			ScopeMetrics: []*metricspb.ScopeMetrics{{
				Metrics: []*metricspb.Metric{{
					Name: "req_duration",
					Data: &metricspb.Metric_Summary{Summary: &metricspb.Summary{
						DataPoints: []*metricspb.SummaryDataPoint{
							{Sum: 12.5, Count: 3},
						},
					}},
				}},
			}},
		}},
	}
	metrics := ConvertResourceMetrics(req)
	require.Len(t, metrics, 1)
	assert.Equal(t, model.MetricTypeSummary, metrics[0].Type)
	assert.Equal(t, 12.5, metrics[0].Point.Value)
	assert.Equal(t, model.AggregationUnspecified, metrics[0].Temporality)
}

func TestConvertResourceMetricsExponentialHistogramSkipped(t *testing.T) {
	req := &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{{
			ScopeMetrics: []*metricspb.ScopeMetrics{{
				Metrics: []*metricspb.Metric{{
					Name: "exp",
					Data: &metricspb.Metric_ExponentialHistogram{ExponentialHistogram: &metricspb.ExponentialHistogram{}},
				}},
			}},
		}},
	}
	metrics := ConvertResourceMetrics(req)
	assert.Empty(t, metrics)
}

func TestConvertDeterministic(t *testing.T) {
	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{{
			Resource: resourceWithService("svc-A"),
			ScopeSpans: []*tracepb.ScopeSpans{{
				Spans: []*tracepb.Span{{
					TraceId: []byte{0x01}, SpanId: []byte{0x02},
					StartTimeUnixNano: 1, EndTimeUnixNano: 2,
				}},
			}},
		}},
	}
	a := ConvertResourceSpans(req)
	b := ConvertResourceSpans(req)
	assert.Equal(t, a, b)
}

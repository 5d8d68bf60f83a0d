package converter

import (
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"

	"glint/internal/model"
)

func numberValue(dp *metricspb.NumberDataPoint) float64 {
	switch v := dp.GetValue().(type) {
	case *metricspb.NumberDataPoint_AsDouble:
		return v.AsDouble
	case *metricspb.NumberDataPoint_AsInt:
		return float64(v.AsInt)
	default:
		return 0
	}
}

func dataPointFromNumber(dp *metricspb.NumberDataPoint) model.MetricDataPoint {
	start := dp.GetStartTimeUnixNano()
	return model.MetricDataPoint{
		TimeUnixNano:      int64(dp.GetTimeUnixNano()),
		StartTimeUnixNano: int64(start),
		HasStartTime:      start != 0,
		Value:             numberValue(dp),
		Attributes:        convertAttributes(dp.GetAttributes()),
	}
}

// histogramValue collapses a histogram data point's value to sum ?? count,
// per spec §3 ("Sum-of-histogram collapses to sum ?? count").
func histogramValue(dp *metricspb.HistogramDataPoint) float64 {
	if dp.Sum != nil {
		return dp.GetSum()
	}
	return float64(dp.GetCount())
}

func dataPointFromHistogram(dp *metricspb.HistogramDataPoint) model.MetricDataPoint {
	start := dp.GetStartTimeUnixNano()
	return model.MetricDataPoint{
		TimeUnixNano:      int64(dp.GetTimeUnixNano()),
		StartTimeUnixNano: int64(start),
		HasStartTime:      start != 0,
		Value:             histogramValue(dp),
		Attributes:        convertAttributes(dp.GetAttributes()),
	}
}

// summaryValue collapses a summary data point's value to its sum, per spec
// §3 ("Summary collapses to sum").
func summaryValue(dp *metricspb.SummaryDataPoint) float64 {
	return dp.GetSum()
}

func dataPointFromSummary(dp *metricspb.SummaryDataPoint) model.MetricDataPoint {
	start := dp.GetStartTimeUnixNano()
	return model.MetricDataPoint{
		TimeUnixNano:      int64(dp.GetTimeUnixNano()),
		StartTimeUnixNano: int64(start),
		HasStartTime:      start != 0,
		Value:             summaryValue(dp),
		Attributes:        convertAttributes(dp.GetAttributes()),
	}
}

func metricBase(m *metricspb.Metric, serviceName string, hasServiceName bool) model.Metric {
	desc, unit := m.GetDescription(), m.GetUnit()
	return model.Metric{
		Name:           m.GetName(),
		Description:    desc,
		HasDescription: desc != "",
		Unit:           unit,
		HasUnit:        unit != "",
		ServiceName:    serviceName,
		HasServiceName: hasServiceName,
	}
}

// ConvertResourceMetrics converts a full ExportMetricsServiceRequest into a
// flat sequence of model.Metric rows, one per data point (spec §4.3: "a
// Metric with n points becomes n rows sharing name/type/temporality").
// Metrics carrying an ExponentialHistogram — the one OTLP data type outside
// {Gauge, Sum, Histogram, Summary} — produce no output (spec §4.2).
func ConvertResourceMetrics(req *colmetricspb.ExportMetricsServiceRequest) []model.Metric {
	if req == nil {
		return nil
	}
	var out []model.Metric
	for _, rm := range req.GetResourceMetrics() {
		serviceName, hasServiceName := "", false
		if rm.GetResource() != nil {
			serviceName, hasServiceName = resourceServiceName(rm.GetResource().GetAttributes())
		}
		for _, sm := range rm.GetScopeMetrics() {
			for _, metric := range sm.GetMetrics() {
				base := metricBase(metric, serviceName, hasServiceName)
				switch data := metric.GetData().(type) {
				case *metricspb.Metric_Gauge:
					for _, dp := range data.Gauge.GetDataPoints() {
						row := base
						row.Type = model.MetricTypeGauge
						row.Temporality = model.AggregationUnspecified
						row.Point = dataPointFromNumber(dp)
						out = append(out, row)
					}
				case *metricspb.Metric_Sum:
					temporality := model.AggregationTemporalityFromWire(int32(data.Sum.GetAggregationTemporality()))
					for _, dp := range data.Sum.GetDataPoints() {
						row := base
						row.Type = model.MetricTypeSum
						row.Temporality = temporality
						row.Point = dataPointFromNumber(dp)
						out = append(out, row)
					}
				case *metricspb.Metric_Histogram:
					temporality := model.AggregationTemporalityFromWire(int32(data.Histogram.GetAggregationTemporality()))
					for _, dp := range data.Histogram.GetDataPoints() {
						row := base
						row.Type = model.MetricTypeHistogram
						row.Temporality = temporality
						row.Point = dataPointFromHistogram(dp)
						out = append(out, row)
					}
				case *metricspb.Metric_Summary:
					for _, dp := range data.Summary.GetDataPoints() {
						row := base
						row.Type = model.MetricTypeSummary
						row.Temporality = model.AggregationUnspecified
						row.Point = dataPointFromSummary(dp)
						out = append(out, row)
					}
				default:
					// ExponentialHistogram or unset: not one of the four
					// supported types, produces no rows (spec §4.2).
				}
			}
		}
	}
	return out
}

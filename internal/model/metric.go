package model

// MetricType is the unwrapped OTLP metric data type.
type MetricType int32

const (
	MetricTypeGauge MetricType = iota
	MetricTypeSum
	MetricTypeHistogram
	MetricTypeSummary
)

func (t MetricType) String() string {
	switch t {
	case MetricTypeSum:
		return "Sum"
	case MetricTypeHistogram:
		return "Histogram"
	case MetricTypeSummary:
		return "Summary"
	default:
		return "Gauge"
	}
}

// AggregationTemporality mirrors the OTLP temporality enum. Gauge and
// Summary metrics are always AggregationUnspecified (spec §3).
type AggregationTemporality int32

const (
	AggregationUnspecified AggregationTemporality = iota
	AggregationDelta
	AggregationCumulative
)

func (t AggregationTemporality) String() string {
	switch t {
	case AggregationDelta:
		return "Delta"
	case AggregationCumulative:
		return "Cumulative"
	default:
		return "Unspecified"
	}
}

// AggregationTemporalityFromWire maps the OTLP integer temporality code:
// 1->Delta, 2->Cumulative, anything else (including 0)->Unspecified.
func AggregationTemporalityFromWire(code int32) AggregationTemporality {
	switch code {
	case 1:
		return AggregationDelta
	case 2:
		return AggregationCumulative
	default:
		return AggregationUnspecified
	}
}

// MetricDataPoint is a single sample belonging to a Metric.
type MetricDataPoint struct {
	TimeUnixNano      int64
	StartTimeUnixNano int64
	HasStartTime      bool
	Value             float64
	Attributes        Attributes
}

// Metric is the converted, storage-ready representation of an OTLP Metric.
// Each data point becomes its own storage row sharing Name/Type/Temporality
// (spec §4.3): this struct models one such row, not the whole metric family.
type Metric struct {
	Name           string
	Description    string
	HasDescription bool
	Unit           string
	HasUnit        bool
	Type           MetricType
	Temporality    AggregationTemporality
	Point          MetricDataPoint
	ServiceName    string
	HasServiceName bool
}

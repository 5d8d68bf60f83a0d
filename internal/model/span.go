package model

import "encoding/json"

// SpanKind mirrors the OTLP span kind enum. Out-of-range wire values decode
// to SpanKindUnspecified (spec §4.2 enum-mapping rule).
type SpanKind int32

const (
	SpanKindUnspecified SpanKind = iota
	SpanKindInternal
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

func (k SpanKind) String() string {
	switch k {
	case SpanKindInternal:
		return "INTERNAL"
	case SpanKindServer:
		return "SERVER"
	case SpanKindClient:
		return "CLIENT"
	case SpanKindProducer:
		return "PRODUCER"
	case SpanKindConsumer:
		return "CONSUMER"
	default:
		return "UNSPECIFIED"
	}
}

// StatusCode mirrors the OTLP span status code enum.
type StatusCode int32

const (
	StatusCodeUnset StatusCode = iota
	StatusCodeOk
	StatusCodeError
)

func (c StatusCode) String() string {
	switch c {
	case StatusCodeOk:
		return "OK"
	case StatusCodeError:
		return "ERROR"
	default:
		return "UNSET"
	}
}

// Status is a span's outcome: a code plus an optional message. An empty
// wire-message string decodes to an absent Message (spec §3).
type Status struct {
	Code    StatusCode
	Message string
}

type jsonStatus struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// MarshalJSON renders Code by name (e.g. "ERROR") rather than its numeric
// wire value.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonStatus{Code: s.Code.String(), Message: s.Message})
}

// Span is the converted, storage-ready representation of an OTLP Span.
// Empty wire parent bytes collapse to absence: HasParent is false and
// ParentSpanID is left "". Root detection (IsRoot) and ChildrenOf go by
// HasParent.
type Span struct {
	SpanID            string
	TraceID           string
	ParentSpanID      string
	HasParent         bool
	Name              string
	Kind              SpanKind
	StartTimeUnixNano int64
	EndTimeUnixNano   int64
	Attributes        Attributes
	Status            Status
	ServiceName       string
	HasServiceName    bool
}

type jsonSpan struct {
	SpanID            string     `json:"span_id"`
	TraceID           string     `json:"trace_id"`
	ParentSpanID      string     `json:"parent_span_id,omitempty"`
	Name              string     `json:"name"`
	Kind              string     `json:"kind"`
	StartTimeUnixNano int64      `json:"start_time_unix_nano"`
	EndTimeUnixNano   int64      `json:"end_time_unix_nano"`
	Attributes        Attributes `json:"attributes"`
	Status            Status     `json:"status"`
	ServiceName        string     `json:"service_name,omitempty"`
}

// MarshalJSON renders Kind by name and omits ParentSpanID/ServiceName when
// absent rather than emitting an empty string.
func (s Span) MarshalJSON() ([]byte, error) {
	js := jsonSpan{
		SpanID:            s.SpanID,
		TraceID:           s.TraceID,
		Name:              s.Name,
		Kind:              s.Kind.String(),
		StartTimeUnixNano: s.StartTimeUnixNano,
		EndTimeUnixNano:   s.EndTimeUnixNano,
		Attributes:        s.Attributes,
		Status:            s.Status,
	}
	if s.HasParent {
		js.ParentSpanID = s.ParentSpanID
	}
	if s.HasServiceName {
		js.ServiceName = s.ServiceName
	}
	return json.Marshal(js)
}

// DurationNanos returns end - start in nanoseconds.
func (s Span) DurationNanos() int64 {
	return s.EndTimeUnixNano - s.StartTimeUnixNano
}

// DurationMillis returns the span's duration in fractional milliseconds.
func (s Span) DurationMillis() float64 {
	return float64(s.DurationNanos()) / 1e6
}

// IsRoot reports whether this span has no parent.
func (s Span) IsRoot() bool {
	return !s.HasParent
}

package converter

import (
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"glint/internal/model"
)

// spanKindFromWire maps the OTLP SpanKind wire enum onto model.SpanKind.
// Out-of-range values map to SpanKindUnspecified (spec §4.2).
func spanKindFromWire(k tracepb.Span_SpanKind) model.SpanKind {
	switch k {
	case tracepb.Span_SPAN_KIND_INTERNAL:
		return model.SpanKindInternal
	case tracepb.Span_SPAN_KIND_SERVER:
		return model.SpanKindServer
	case tracepb.Span_SPAN_KIND_CLIENT:
		return model.SpanKindClient
	case tracepb.Span_SPAN_KIND_PRODUCER:
		return model.SpanKindProducer
	case tracepb.Span_SPAN_KIND_CONSUMER:
		return model.SpanKindConsumer
	default:
		return model.SpanKindUnspecified
	}
}

// statusCodeFromWire maps the OTLP Status code wire enum onto
// model.StatusCode. Out-of-range values map to StatusCodeUnset (spec §4.2).
func statusCodeFromWire(c tracepb.Status_StatusCode) model.StatusCode {
	switch c {
	case tracepb.Status_STATUS_CODE_OK:
		return model.StatusCodeOk
	case tracepb.Status_STATUS_CODE_ERROR:
		return model.StatusCodeError
	default:
		return model.StatusCodeUnset
	}
}

// convertStatus converts an OTLP Status. A nil status, or one with an empty
// message string, yields an absent message (spec §3: "empty wire-message
// string ⇒ absent").
func convertStatus(s *tracepb.Status) model.Status {
	if s == nil {
		return model.Status{Code: model.StatusCodeUnset}
	}
	return model.Status{
		Code:    statusCodeFromWire(s.GetCode()),
		Message: s.GetMessage(),
	}
}

func convertSpan(span *tracepb.Span, serviceName string, hasServiceName bool) model.Span {
	spanID, _ := hexID(span.GetSpanId())
	traceID, _ := hexID(span.GetTraceId())
	parentID, hasParent := hexID(span.GetParentSpanId())

	return model.Span{
		SpanID:            spanID,
		TraceID:           traceID,
		ParentSpanID:      parentID,
		HasParent:         hasParent,
		Name:              span.GetName(),
		Kind:              spanKindFromWire(span.GetKind()),
		StartTimeUnixNano: int64(span.GetStartTimeUnixNano()),
		EndTimeUnixNano:   int64(span.GetEndTimeUnixNano()),
		Attributes:        convertAttributes(span.GetAttributes()),
		Status:            convertStatus(span.GetStatus()),
		ServiceName:        serviceName,
		HasServiceName:     hasServiceName,
	}
}

// ConvertResourceSpans converts a full ExportTraceServiceRequest into a flat
// sequence of model.Span, denormalizing each ResourceSpans envelope's
// service.name onto every descendant span (spec §4.2 resource flattening).
func ConvertResourceSpans(req *coltracepb.ExportTraceServiceRequest) []model.Span {
	if req == nil {
		return nil
	}
	var out []model.Span
	for _, rs := range req.GetResourceSpans() {
		serviceName, hasServiceName := "", false
		if rs.GetResource() != nil {
			serviceName, hasServiceName = resourceServiceName(rs.GetResource().GetAttributes())
		}
		for _, ss := range rs.GetScopeSpans() {
			for _, span := range ss.GetSpans() {
				out = append(out, convertSpan(span, serviceName, hasServiceName))
			}
		}
	}
	return out
}

package converter

import (
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"

	"glint/internal/model"
)

func convertLogRecord(rec *logspb.LogRecord, serviceName string, hasServiceName bool) model.Log {
	traceID, hasTraceID := hexID(rec.GetTraceId())
	spanID, hasSpanID := hexID(rec.GetSpanId())

	severityText := rec.GetSeverityText()

	return model.Log{
		TimeUnixNano:    int64(rec.GetTimeUnixNano()),
		Severity:        model.SeverityLevelFromNumber(int32(rec.GetSeverityNumber())),
		SeverityText:    severityText,
		HasSeverityText: severityText != "",
		Body:            stringifyAnyValue(rec.GetBody()),
		Attributes:      convertAttributes(rec.GetAttributes()),
		TraceID:         traceID,
		HasTraceID:      hasTraceID,
		SpanID:          spanID,
		HasSpanID:       hasSpanID,
		ServiceName:     serviceName,
		HasServiceName:  hasServiceName,
	}
}

// ConvertResourceLogs converts a full ExportLogsServiceRequest into a flat
// sequence of model.Log, denormalizing each ResourceLogs envelope's
// service.name onto every descendant log record (spec §4.2).
func ConvertResourceLogs(req *collogspb.ExportLogsServiceRequest) []model.Log {
	if req == nil {
		return nil
	}
	var out []model.Log
	for _, rl := range req.GetResourceLogs() {
		serviceName, hasServiceName := "", false
		if rl.GetResource() != nil {
			serviceName, hasServiceName = resourceServiceName(rl.GetResource().GetAttributes())
		}
		for _, sl := range rl.GetScopeLogs() {
			for _, rec := range sl.GetLogRecords() {
				out = append(out, convertLogRecord(rec, serviceName, hasServiceName))
			}
		}
	}
	return out
}

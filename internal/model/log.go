package model

import "encoding/json"

// SeverityLevel is the six-way display fold of OTLP's 25-valued severity
// number (spec §3), plus UNSPECIFIED for out-of-range/zero input.
type SeverityLevel int32

const (
	SeverityUnspecified SeverityLevel = iota
	SeverityTrace
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

func (l SeverityLevel) String() string {
	switch l {
	case SeverityTrace:
		return "TRACE"
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return "UNSPECIFIED"
	}
}

// SeverityLevelFromNumber folds an OTLP SeverityNumber (1..24) into the
// six display classes. Values outside every named range (including 0)
// fold to SeverityUnspecified. Ranges follow the OTLP specification:
// 1-4 Trace, 5-8 Debug, 9-12 Info, 13-16 Warn, 17-20 Error, 21-24 Fatal.
func SeverityLevelFromNumber(n int32) SeverityLevel {
	switch {
	case n >= 1 && n <= 4:
		return SeverityTrace
	case n >= 5 && n <= 8:
		return SeverityDebug
	case n >= 9 && n <= 12:
		return SeverityInfo
	case n >= 13 && n <= 16:
		return SeverityWarn
	case n >= 17 && n <= 20:
		return SeverityError
	case n >= 21 && n <= 24:
		return SeverityFatal
	default:
		return SeverityUnspecified
	}
}

// Log is the converted, storage-ready representation of an OTLP LogRecord.
type Log struct {
	TimeUnixNano  int64
	Severity      SeverityLevel
	SeverityText  string
	HasSeverityText bool
	Body          string
	Attributes    Attributes
	TraceID       string
	HasTraceID    bool
	SpanID        string
	HasSpanID     bool
	ServiceName   string
	HasServiceName bool
}

type jsonLog struct {
	TimeUnixNano int64      `json:"time_unix_nano"`
	Severity     string     `json:"severity_level"`
	SeverityText string     `json:"severity_text,omitempty"`
	Body         string     `json:"body"`
	Attributes   Attributes `json:"attributes"`
	TraceID      string     `json:"trace_id,omitempty"`
	SpanID       string     `json:"span_id,omitempty"`
	ServiceName  string     `json:"service_name,omitempty"`
}

// MarshalJSON renders Severity by name and omits optional fields when
// absent rather than emitting empty strings.
func (l Log) MarshalJSON() ([]byte, error) {
	jl := jsonLog{
		TimeUnixNano: l.TimeUnixNano,
		Severity:     l.Severity.String(),
		Body:         l.Body,
		Attributes:   l.Attributes,
	}
	if l.HasSeverityText {
		jl.SeverityText = l.SeverityText
	}
	if l.HasTraceID {
		jl.TraceID = l.TraceID
	}
	if l.HasSpanID {
		jl.SpanID = l.SpanID
	}
	if l.HasServiceName {
		jl.ServiceName = l.ServiceName
	}
	return json.Marshal(jl)
}

// IsError reports whether the log's severity falls in ERROR or FATAL.
func (l Log) IsError() bool {
	return l.Severity == SeverityError || l.Severity == SeverityFatal
}

// IsCorrelated reports whether both trace and span ids are present.
func (l Log) IsCorrelated() bool {
	return l.HasTraceID && l.HasSpanID
}

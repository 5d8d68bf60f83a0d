package model

// Trace is a derived, read-time aggregate grouping spans by trace id. It is
// never persisted: storage reconstructs one from the spans table on each
// read (spec §3, §4.3 get_trace_by_id).
type Trace struct {
	TraceID string
	Spans   []Span
}

// NewTrace builds a Trace from spans already filtered to a single trace id.
// Callers are expected to have ordered spans by ascending start time
// (storage's get_trace_by_id does this at the query level).
func NewTrace(traceID string, spans []Span) Trace {
	return Trace{TraceID: traceID, Spans: spans}
}

// RootSpan returns the first span with no parent, or the zero Span and
// false if none is found (e.g. the root arrived out of the queried window).
func (t Trace) RootSpan() (Span, bool) {
	for _, s := range t.Spans {
		if s.IsRoot() {
			return s, true
		}
	}
	return Span{}, false
}

// ChildrenOf returns every span whose ParentSpanID equals spanID.
func (t Trace) ChildrenOf(spanID string) []Span {
	var out []Span
	for _, s := range t.Spans {
		if s.HasParent && s.ParentSpanID == spanID {
			out = append(out, s)
		}
	}
	return out
}

// SpanByID returns the span with the given id, if present.
func (t Trace) SpanByID(spanID string) (Span, bool) {
	for _, s := range t.Spans {
		if s.SpanID == spanID {
			return s, true
		}
	}
	return Span{}, false
}

// DurationNanos is max(end) - min(start) across every span in the trace.
// Returns 0 for an empty trace.
func (t Trace) DurationNanos() int64 {
	if len(t.Spans) == 0 {
		return 0
	}
	minStart := t.Spans[0].StartTimeUnixNano
	maxEnd := t.Spans[0].EndTimeUnixNano
	for _, s := range t.Spans[1:] {
		if s.StartTimeUnixNano < minStart {
			minStart = s.StartTimeUnixNano
		}
		if s.EndTimeUnixNano > maxEnd {
			maxEnd = s.EndTimeUnixNano
		}
	}
	return maxEnd - minStart
}

// DurationMillis is the trace's duration in fractional milliseconds.
func (t Trace) DurationMillis() float64 {
	return float64(t.DurationNanos()) / 1e6
}

// HasErrors reports whether any span in the trace has Status.Code == Error.
func (t Trace) HasErrors() bool {
	for _, s := range t.Spans {
		if s.Status.Code == StatusCodeError {
			return true
		}
	}
	return false
}

// ServiceName picks the root span's service name if present, else falls
// back to the first span's.
func (t Trace) ServiceName() string {
	if root, ok := t.RootSpan(); ok && root.HasServiceName {
		return root.ServiceName
	}
	if len(t.Spans) > 0 {
		return t.Spans[0].ServiceName
	}
	return ""
}

// SpanCount returns the number of spans in the trace.
func (t Trace) SpanCount() int {
	return len(t.Spans)
}

// StartTime returns the earliest start_time_unix_nano across all spans.
// Returns 0 for an empty trace.
func (t Trace) StartTime() int64 {
	if len(t.Spans) == 0 {
		return 0
	}
	min := t.Spans[0].StartTimeUnixNano
	for _, s := range t.Spans[1:] {
		if s.StartTimeUnixNano < min {
			min = s.StartTimeUnixNano
		}
	}
	return min
}

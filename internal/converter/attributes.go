package converter

import (
	"fmt"
	"strings"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"

	"glint/internal/model"
)

// convertAttributes converts an OTLP KeyValue slice into an Attributes map.
// Kvlist-valued attributes are silently dropped (spec §4.2); the enclosing
// key simply does not appear. Keys are unique by construction; last one
// wins if the wire payload repeats a key, matching model.Attributes.Set.
func convertAttributes(kvs []*commonpb.KeyValue) model.Attributes {
	attrs := model.NewAttributes()
	for _, kv := range kvs {
		if kv == nil {
			continue
		}
		v, ok := convertAnyValue(kv.GetValue())
		if !ok {
			continue
		}
		attrs.Set(kv.GetKey(), v)
	}
	return attrs
}

// convertAnyValue converts a single OTLP AnyValue into an AttributeValue.
// Returns ok=false for a nil value or an unsupported kvlist variant, per
// spec §4.2's "one arm per OTLP variant; kvlist silently dropped" rule.
func convertAnyValue(v *commonpb.AnyValue) (model.AttributeValue, bool) {
	if v == nil {
		return model.AttributeValue{}, false
	}
	switch val := v.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return model.StringValue(val.StringValue), true
	case *commonpb.AnyValue_IntValue:
		return model.IntValue(val.IntValue), true
	case *commonpb.AnyValue_DoubleValue:
		return model.DoubleValue(val.DoubleValue), true
	case *commonpb.AnyValue_BoolValue:
		return model.BoolValue(val.BoolValue), true
	case *commonpb.AnyValue_BytesValue:
		return model.BytesValue(val.BytesValue), true
	case *commonpb.AnyValue_ArrayValue:
		if val.ArrayValue == nil {
			return model.ArrayValue(nil), true
		}
		out := make([]model.AttributeValue, 0, len(val.ArrayValue.Values))
		for _, item := range val.ArrayValue.Values {
			if cv, ok := convertAnyValue(item); ok {
				out = append(out, cv)
			}
		}
		return model.ArrayValue(out), true
	case *commonpb.AnyValue_KvlistValue:
		return model.AttributeValue{}, false
	default:
		return model.AttributeValue{}, false
	}
}

// stringifyAnyValue renders any OTLP AnyValue as a display string for log
// bodies (spec §4.2): bool/int/double via canonical decimal, bytes via hex,
// arrays via "[a,b,…]" comma join, kvlist via the literal
// "<kvlist unsupported>" (spec §9 Open Question c).
func stringifyAnyValue(v *commonpb.AnyValue) string {
	if v == nil {
		return ""
	}
	switch val := v.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return val.StringValue
	case *commonpb.AnyValue_IntValue:
		return fmt.Sprintf("%d", val.IntValue)
	case *commonpb.AnyValue_DoubleValue:
		return fmt.Sprintf("%g", val.DoubleValue)
	case *commonpb.AnyValue_BoolValue:
		return fmt.Sprintf("%t", val.BoolValue)
	case *commonpb.AnyValue_BytesValue:
		return fmt.Sprintf("%x", val.BytesValue)
	case *commonpb.AnyValue_ArrayValue:
		if val.ArrayValue == nil {
			return "[]"
		}
		parts := make([]string, len(val.ArrayValue.Values))
		for i, item := range val.ArrayValue.Values {
			parts[i] = stringifyAnyValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case *commonpb.AnyValue_KvlistValue:
		return "<kvlist unsupported>"
	default:
		return ""
	}
}

// resourceServiceName extracts the service.name attribute from a raw OTLP
// resource attribute slice, returning ("", false) if absent.
func resourceServiceName(kvs []*commonpb.KeyValue) (string, bool) {
	for _, kv := range kvs {
		if kv != nil && kv.GetKey() == "service.name" {
			if s, ok := stringAnyValue(kv.GetValue()); ok {
				return s, true
			}
		}
	}
	return "", false
}

func stringAnyValue(v *commonpb.AnyValue) (string, bool) {
	if v == nil {
		return "", false
	}
	if sv, ok := v.GetValue().(*commonpb.AnyValue_StringValue); ok {
		return sv.StringValue, true
	}
	return "", false
}

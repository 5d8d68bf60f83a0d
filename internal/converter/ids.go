// Package converter maps OTLP wire messages (go.opentelemetry.io/proto/otlp
// generated types) onto the internal model. Every exported function here is
// pure and total: given the same wire bytes, it always returns the same
// record sequence (see spec §4.2, §8 determinism property).
package converter

import "encoding/hex"

// hexID lowercase-hex-encodes raw wire id bytes. Empty input collapses to
// ("", false) — absence, never the empty string — which is load-bearing
// for root-span detection (spec §9).
func hexID(b []byte) (string, bool) {
	if len(b) == 0 {
		return "", false
	}
	return hex.EncodeToString(b), true
}

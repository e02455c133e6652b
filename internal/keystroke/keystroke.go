// Package keystroke prepares typing samples for behavioral verification.
package keystroke

import (
	"bytes"
	"encoding/json"

	"github.com/keyprint/authserver/types"
)

// DecodeEvents keeps the raw events that parse as keystroke objects and
// drops anything else.
func DecodeEvents(raw []json.RawMessage) []types.KeystrokeEvent {
	events := make([]types.KeystrokeEvent, 0, len(raw))
	for _, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var ev types.KeystrokeEvent
		if err := json.Unmarshal(item, &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events
}

// ExtractTimings derives dwell and flight times from events.
// Timing analysis is not implemented; the result is always empty.
func ExtractTimings(events []types.KeystrokeEvent) types.Timings {
	return types.Timings{
		Dwell:  map[string][]float64{},
		Flight: []float64{},
	}
}

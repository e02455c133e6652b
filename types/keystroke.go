package types

import "encoding/json"

// KeystrokeEvent is a single key transition captured by the browser.
// Timestamps are milliseconds from the start of the typing sample.
type KeystrokeEvent struct {
	Key    string  `json:"key"`
	DownAt float64 `json:"down_at"`
	UpAt   float64 `json:"up_at"`
}

// Timings holds the features derived from a typing sample.
type Timings struct {
	// Dwell maps a key to how long it was held down.
	Dwell map[string][]float64 `json:"dwell"`

	// Flight holds gaps between releasing one key and pressing the next.
	Flight []float64 `json:"flight"`
}

// EnrollRequest is the payload accepted by the enrollment API.
// Username is a pointer so that an explicitly empty name still counts as present.
type EnrollRequest struct {
	Username *string           `json:"username" validate:"required"`
	Events   []json.RawMessage `json:"events" validate:"required"`
}

// EnrollResponse acknowledges an enrollment sample.
type EnrollResponse struct {
	Status     string `json:"status"`
	Received   bool   `json:"received"`
	EventCount int    `json:"event_count"`
}

// LoginTryResponse acknowledges a keystroke login attempt.
type LoginTryResponse struct {
	Status   string `json:"status"`
	Received bool   `json:"received"`
}

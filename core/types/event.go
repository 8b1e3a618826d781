package types

// Event represents a typed audit record emitted during state transitions.
// Events are write-only telemetry: engines append them but never read them
// back, and core logic does not depend on delivery.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

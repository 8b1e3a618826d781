package events

import (
	"sync"

	"eduledger/core/types"
)

// Event represents a structured state change emitted by an engine.
type Event interface {
	EventType() string
	Event() *types.Event
}

// Emitter broadcasts events to downstream subscribers (e.g. indexers,
// metrics). Implementations must tolerate being called on every mutating
// operation; engines never read events back.
type Emitter interface {
	Emit(Event)
}

// NoopEmitter satisfies the Emitter interface while discarding all events.
// It is the default wired into engines until the node installs a real sink.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}

// Recorder is an append-only in-memory audit sink. The node installs it as
// the engines' emitter; Events returns a snapshot for inspection.
type Recorder struct {
	mu     sync.Mutex
	stored []types.Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends the event payload to the log. Nil payloads are dropped.
func (r *Recorder) Emit(evt Event) {
	if r == nil || evt == nil {
		return
	}
	payload := evt.Event()
	if payload == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := types.Event{Type: payload.Type, Attributes: make(map[string]string, len(payload.Attributes))}
	for k, v := range payload.Attributes {
		clone.Attributes[k] = v
	}
	r.stored = append(r.stored, clone)
}

// Events returns a copy of every recorded event in emission order.
func (r *Recorder) Events() []types.Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.stored))
	for i, evt := range r.stored {
		clone := types.Event{Type: evt.Type, Attributes: make(map[string]string, len(evt.Attributes))}
		for k, v := range evt.Attributes {
			clone.Attributes[k] = v
		}
		out[i] = clone
	}
	return out
}

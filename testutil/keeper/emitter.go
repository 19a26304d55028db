package keeper

import (
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Event is one recorded emission.
type Event struct {
	Type       string
	Attributes map[string]string
}

// RecordingEmitter captures emitted events for assertions.
type RecordingEmitter struct {
	Events []Event
}

var _ types.EventEmitter = (*RecordingEmitter)(nil)

func (e *RecordingEmitter) EmitEvent(eventType string, attributes map[string]string) {
	e.Events = append(e.Events, Event{Type: eventType, Attributes: attributes})
}

// Last returns the most recent event of the given type, or nil.
func (e *RecordingEmitter) Last(eventType string) *Event {
	for i := len(e.Events) - 1; i >= 0; i-- {
		if e.Events[i].Type == eventType {
			return &e.Events[i]
		}
	}
	return nil
}

package input

import (
	"log"
	"sync"
)

// Event is one recorded input event
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// DryDevice is an input endpoint without actual IOs; it records every event
// for inspection
type DryDevice struct {
	mu     sync.Mutex
	events []Event
}

var _ Device = &DryDevice{}

// NewDryDevice returns an input device without actual IOs
func NewDryDevice() *DryDevice {
	log.Println("[dry run] input: initializing input device without IOs")
	return &DryDevice{}
}

func (d *DryDevice) WriteEvent(evType uint16, code uint16, value int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events = append(d.events, Event{Type: evType, Code: code, Value: value})
	return nil
}

func (d *DryDevice) Close() error {
	return nil
}

// Events returns a copy of the recorded events
func (d *DryDevice) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

// Reset drops the recorded events
func (d *DryDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events = nil
}

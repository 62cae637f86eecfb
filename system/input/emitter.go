package input

import (
	"log"
	"sync"

	"github.com/qc71/QC71Manager/system/hotkey"

	"github.com/pkg/errors"
)

// Device is the logical keyboard/hotkey input endpoint
type Device interface {
	// WriteEvent reports one input event
	WriteEvent(evType uint16, code uint16, value int32) error
	// Close destroys the endpoint
	Close() error
}

// WifiStateReader reads the radio kill-switch hardware state (0 or 1)
type WifiStateReader interface {
	WifiState() (int, error)
}

// Emitter owns the input device and translates accepted event codes into
// generic input events using the static keymap. Reporting is best effort:
// failures are logged, never returned.
type Emitter struct {
	mu     sync.Mutex
	dev    Device
	closed bool
}

// NewEmitter takes ownership of the device and seeds the rfkill switch with
// the current hardware state. If the state is unavailable the switch is
// seeded asserted (radio disabled), the fail-safe default.
func NewEmitter(dev Device, wifi WifiStateReader) (*Emitter, error) {
	if dev == nil {
		return nil, errors.New("input: nil Device is invalid")
	}

	state := int32(1)
	if wifi != nil {
		if s, err := wifi.WifiState(); err == nil {
			state = int32(s)
		} else {
			log.Printf("input: cannot read wifi state, seeding rfkill switch asserted: %s\n", err)
		}
	}

	e := &Emitter{
		dev: dev,
	}
	e.write(EvSw, SwRfkillAll, state)
	e.write(EvSyn, 0, 0)

	return e, nil
}

// Report looks up the code in the keymap and emits a key press/release pair
// or a switch state change. Codes not present in the table are not reported.
func (e *Emitter) Report(code hotkey.Code) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	entry, ok := lookup(code)
	if !ok {
		return
	}

	switch entry.Action {
	case ActionKey:
		e.write(EvKey, entry.Key, 1)
		e.write(EvSyn, 0, 0)
		e.write(EvKey, entry.Key, 0)
		e.write(EvSyn, 0, 0)
	case ActionSwitch:
		e.write(EvSw, entry.Switch, entry.SwitchState)
		e.write(EvSyn, 0, 0)
	}
}

func (e *Emitter) write(evType uint16, code uint16, value int32) {
	if err := e.dev.WriteEvent(evType, code, value); err != nil {
		log.Printf("input: cannot write event (%d, %d, %d): %s\n", evType, code, value, err)
	}
}

// Close destroys the input device. Safe to call more than once and on a nil
// Emitter (setup may never have succeeded).
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	return e.dev.Close()
}

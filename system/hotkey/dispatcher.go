package hotkey

import (
	"context"
	"log"

	"github.com/qc71/QC71Manager/system/acpi"

	"github.com/pkg/errors"
)

// ProfileCycler advances the fan/performance profile to the next state
type ProfileCycler interface {
	Cycle()
}

// FnLockStore reads and writes the firmware Fn lock state (0 or 1)
type FnLockStore interface {
	GetState() (int, error)
	SetState(state int) error
}

// BacklightNotifier propagates a hardware-driven keyboard backlight change
type BacklightNotifier interface {
	NotifyKeyboardBacklightChanged(haltCtx context.Context)
}

// AttributeNotifier raises a fire-and-forget change notification on one
// exported attribute
type AttributeNotifier interface {
	NotifyChanged(attribute string)
}

// Attribute names raised by the dispatcher
const (
	AttrFnLock       = "fn_lock"
	AttrSuperKeyLock = "super_key_lock"
	AttrSilentMode   = "silent_mode"
	AttrTurboMode    = "turbo_mode"
)

// Config contains the model variant and the side-effecting resources the
// dispatcher is allowed to touch
type Config struct {
	Model     Model
	Fan       ProfileCycler
	FnLock    FnLockStore
	Backlight BacklightNotifier
	Attr      AttributeNotifier

	// StateChanged is invoked after a side effect mutates persisted state.
	// Optional; used by the controller to debounce saving.
	StateChanged func()
}

// Dispatcher classifies event codes from the primary channel and executes
// their side effects. For a fixed (code, model) pair the selection and order
// of side effects is fully determined.
type Dispatcher struct {
	Config
}

// NewDispatcher validates the side-effect resources and returns a Dispatcher
func NewDispatcher(conf Config) (*Dispatcher, error) {
	if conf.Fan == nil {
		return nil, errors.New("hotkey: nil ProfileCycler is invalid")
	}
	if conf.FnLock == nil {
		return nil, errors.New("hotkey: nil FnLockStore is invalid")
	}
	if conf.Backlight == nil {
		return nil, errors.New("hotkey: nil BacklightNotifier is invalid")
	}
	if conf.Attr == nil {
		return nil, errors.New("hotkey: nil AttributeNotifier is invalid")
	}
	return &Dispatcher{
		Config: conf,
	}, nil
}

type policyClass int

const (
	// log the event and also re-emit it as an input event
	classReport policyClass = iota
	// log only; the state is already reflected elsewhere and a key event
	// would be spurious
	classSuppress
	// run a side effect; the effect decides whether to re-emit
	classEffect
)

type policy struct {
	desc   string
	class  policyClass
	effect func(d *Dispatcher, haltCtx context.Context) bool
}

// policies maps each known event code on the primary channel to its
// handling. Codes absent from this table are reported fail-open.
var policies = map[Code]policy{
	// reported via keyboard controller
	0x01: {desc: "caps lock", class: classReport},
	0x02: {desc: "num lock", class: classReport},
	0x03: {desc: "scroll lock", class: classReport},

	0x04: {desc: "touchpad on", class: classSuppress},
	0x05: {desc: "touchpad off", class: classSuppress},

	// reported via video bus
	0x14: {desc: "increase screen brightness", class: classReport},
	0x15: {desc: "decrease screen brightness", class: classReport},

	// triggered in automatic mode when the rfkill hotkey is pressed
	0x1a: {desc: "radio on", class: classReport},
	0x1b: {desc: "radio off", class: classReport},

	0x35: {desc: "toggle mute", class: classReport},
	0x36: {desc: "decrease volume", class: classReport},
	0x37: {desc: "increase volume", class: classReport},

	0x39: {desc: "lightbar on", class: classSuppress},
	0x3a: {desc: "lightbar off", class: classSuppress},
	0x3b: {desc: "backlight off", class: classSuppress},
	0x3d: {desc: "backlight half", class: classSuppress},
	0x3f: {desc: "backlight full", class: classSuppress},

	0x40: {desc: "enable super key lock", class: classSuppress},
	0x41: {desc: "disable super key lock", class: classSuppress},

	0xa4: {desc: "toggle airplane mode", class: classReport},
	0xa5: {desc: "super key lock state changed", class: classEffect, effect: (*Dispatcher).superKeyLockChanged},
	0xa6: {desc: "lightbar state changed", class: classSuppress},
	0xa7: {desc: "fan boost state changed", class: classSuppress},

	// charger unplugged/plugged in
	0xab: {desc: "AC plugged/unplugged", class: classSuppress},

	0xb0: {desc: "change perf mode", class: classEffect, effect: (*Dispatcher).perfModePressed},
	0xb1: {desc: "keyboard backlight decrease", class: classReport},
	0xb2: {desc: "keyboard backlight increase", class: classReport},
	0xb3: {desc: "keyboard backlight cycle", class: classReport},

	// toggle Fn lock (Fn+ESC)
	0xb8: {desc: "toggle Fn lock", class: classEffect, effect: (*Dispatcher).fnLockToggled},

	0xbc: {desc: "change perf mode (alternate)", class: classEffect, effect: (*Dispatcher).altPerfModePressed},

	// webcam toggle on/off
	0xcf: {desc: "toggle webcam", class: classReport},

	// keyboard backlight brightness changed
	0xf0: {desc: "keyboard backlight changed", class: classEffect, effect: (*Dispatcher).backlightChanged},
}

// Dispatch runs the side effects for the given code and returns whether the
// code should also be re-emitted as a generic input event. Every side effect
// runs to completion before Dispatch returns.
func (d *Dispatcher) Dispatch(haltCtx context.Context, channel acpi.Channel, code Code) bool {
	if channel != acpi.PrimaryChannel {
		// no hotkey semantics on the other channels; let the keymap decide
		return true
	}

	p, ok := policies[code]
	if !ok {
		log.Printf("hotkey: warning: unknown code: %#x\n", uint8(code))
		return true
	}

	log.Printf("hotkey: %s\n", p.desc)

	switch p.class {
	case classSuppress:
		return false
	case classEffect:
		return p.effect(d, haltCtx)
	default:
		return true
	}
}

func (d *Dispatcher) superKeyLockChanged(haltCtx context.Context) bool {
	d.Attr.NotifyChanged(AttrSuperKeyLock)
	return true
}

func (d *Dispatcher) perfModePressed(haltCtx context.Context) bool {
	if d.Model != ModelEvo && d.Model != ModelCreative {
		return false
	}
	d.Fan.Cycle()
	d.stateChanged()
	return true
}

func (d *Dispatcher) altPerfModePressed(haltCtx context.Context) bool {
	d.Attr.NotifyChanged(AttrSilentMode)
	if d.Model == ModelHero || d.Model == ModelTitan {
		d.Attr.NotifyChanged(AttrTurboMode)
	}
	return d.Model == ModelExecutive
}

func (d *Dispatcher) fnLockToggled(haltCtx context.Context) bool {
	d.toggleFnLock()
	d.Attr.NotifyChanged(AttrFnLock)
	return true
}

func (d *Dispatcher) backlightChanged(haltCtx context.Context) bool {
	d.Backlight.NotifyKeyboardBacklightChanged(haltCtx)
	return false
}

func (d *Dispatcher) toggleFnLock() {
	status, err := d.FnLock.GetState()
	if err != nil {
		log.Printf("hotkey: cannot read Fn lock state: %s\n", err)
		return
	}

	// seemingly the state returned inside the event path is not the current
	// one, so writing back the value just read is what lands the toggle
	negated := 0
	if status == 0 {
		negated = 1
	}
	log.Printf("hotkey: setting Fn lock state from %d to %d\n", negated, status)
	if err := d.FnLock.SetState(status); err != nil {
		log.Printf("hotkey: cannot set Fn lock state: %s\n", err)
		return
	}
	d.stateChanged()
}

func (d *Dispatcher) stateChanged() {
	if d.StateChanged != nil {
		d.StateChanged()
	}
}

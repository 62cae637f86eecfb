package input

import (
	"github.com/qc71/QC71Manager/system/hotkey"
)

// ActionType tags a keymap entry
type ActionType int

// Defines the possible entry actions. Ignore means the code is known but
// handled elsewhere (keyboard controller, video bus) and must not produce a
// second event; a code absent from the table produces nothing either, but
// because the table has no opinion on it.
const (
	ActionIgnore ActionType = iota
	ActionKey
	ActionSwitch
)

// Entry maps one event code to its input action
type Entry struct {
	Code        hotkey.Code
	Action      ActionType
	Key         uint16
	Switch      uint16
	SwitchState int32
}

// Keymap is the static hotkey table, ordered by code. Codes are unique;
// constructed once at startup and read-only thereafter.
var Keymap = []Entry{
	// reported via keyboard controller
	{Code: 0x01, Action: ActionIgnore, Key: KeyCapsLock},
	{Code: 0x02, Action: ActionIgnore, Key: KeyNumLock},
	{Code: 0x03, Action: ActionIgnore, Key: KeyScrollLock},

	// reported via video bus
	{Code: 0x14, Action: ActionIgnore, Key: KeyBrightnessUp},
	{Code: 0x15, Action: ActionIgnore, Key: KeyBrightnessDown},

	// reported in automatic mode when the rfkill state changes
	{Code: 0x1a, Action: ActionSwitch, Switch: SwRfkillAll, SwitchState: 1},
	{Code: 0x1b, Action: ActionSwitch, Switch: SwRfkillAll, SwitchState: 0},

	// reported via keyboard controller
	{Code: 0x35, Action: ActionIgnore, Key: KeyMute},
	{Code: 0x36, Action: ActionIgnore, Key: KeyVolumeDown},
	{Code: 0x37, Action: ActionIgnore, Key: KeyVolumeUp},

	// not reported by other means when in manual mode
	{Code: 0xa4, Action: ActionKey, Key: KeyRfkill},
	{Code: 0xa5, Action: ActionKey, Key: KeyFnF2},
	{Code: 0xb0, Action: ActionKey, Key: KeyFnF5},
	{Code: 0xb1, Action: ActionKey, Key: KeyKbdIllumDown},
	{Code: 0xb2, Action: ActionKey, Key: KeyKbdIllumUp},
	{Code: 0xb3, Action: ActionKey, Key: KeyKbdIllumToggle},
	{Code: 0xb8, Action: ActionKey, Key: KeyFnEsc},
	{Code: 0xbc, Action: ActionKey, Key: KeyFnF5},
	{Code: 0xcf, Action: ActionKey, Key: KeyFnF12},
}

func lookup(code hotkey.Code) (Entry, bool) {
	for _, e := range Keymap {
		if e.Code == code {
			return e, true
		}
	}
	return Entry{}, false
}

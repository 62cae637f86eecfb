package input

// Event types (linux/input-event-codes.h)
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvSw  uint16 = 0x05
)

// Key symbols emitted by the hotkey keymap
const (
	KeyCapsLock       uint16 = 58
	KeyNumLock        uint16 = 69
	KeyScrollLock     uint16 = 70
	KeyMute           uint16 = 113
	KeyVolumeDown     uint16 = 114
	KeyVolumeUp       uint16 = 115
	KeyBrightnessDown uint16 = 224
	KeyBrightnessUp   uint16 = 225
	KeyKbdIllumToggle uint16 = 228
	KeyKbdIllumDown   uint16 = 229
	KeyKbdIllumUp     uint16 = 230
	KeyRfkill         uint16 = 247
	KeyFnEsc          uint16 = 0x1d1
	KeyFnF2           uint16 = 0x1d3
	KeyFnF5           uint16 = 0x1d6
	KeyFnF12          uint16 = 0x1dd
)

// Switch symbols
const (
	SwRfkillAll uint16 = 0x03
)

// BusHost is the bus type reported for the virtual device
const BusHost uint16 = 0x19

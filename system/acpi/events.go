package acpi

import "fmt"

// Channel identifies one of the firmware notification event channels.
// The values are the WMI event block GUIDs advertised by the firmware.
type Channel string

// Defines the three firmware event channels
const (
	Event70 Channel = "ABBC0F70-8EA1-11D1-00A0-C90629100000"
	Event71 Channel = "ABBC0F71-8EA1-11D1-00A0-C90629100000"
	Event72 Channel = "ABBC0F72-8EA1-11D1-00A0-C90629100000"
)

// PrimaryChannel is the only channel whose event codes carry hotkey semantics.
// Codes on the other channels are passed straight to the input re-emitter.
const PrimaryChannel = Event72

// Channels lists every channel the controller should install a listener for
var Channels = []Channel{
	Event70,
	Event71,
	Event72,
}

// PayloadType describes the shape of the payload attached to a notification
type PayloadType int

// Defines the possible payload shapes
const (
	TypeAbsent PayloadType = iota
	TypeInteger
	TypeText
	TypeBytes
)

func (t PayloadType) String() string {
	return [...]string{"absent", "integer", "text", "bytes"}[t]
}

// Payload is the opaque typed value delivered with a notification.
// Only the field matching Type is meaningful.
type Payload struct {
	Type    PayloadType
	Integer uint64
	Text    string
	Bytes   []byte
}

// IntegerPayload constructs an integer payload
func IntegerPayload(v uint64) Payload {
	return Payload{Type: TypeInteger, Integer: v}
}

// TextPayload constructs a text payload
func TextPayload(s string) Payload {
	return Payload{Type: TypeText, Text: s}
}

// BytesPayload constructs a buffer payload
func BytesPayload(b []byte) Payload {
	return Payload{Type: TypeBytes, Bytes: b}
}

func (p Payload) String() string {
	switch p.Type {
	case TypeInteger:
		return fmt.Sprintf("integer(%#x)", p.Integer)
	case TypeText:
		return fmt.Sprintf("text(%q)", p.Text)
	case TypeBytes:
		return fmt.Sprintf("bytes(% x)", p.Bytes)
	default:
		return "absent"
	}
}

// RawEvent is one firmware notification as delivered by the event source
type RawEvent struct {
	Channel Channel
	Payload Payload
}

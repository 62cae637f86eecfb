package hotkey

import (
	"log"

	"github.com/qc71/QC71Manager/system/acpi"
)

// Code is the numeric event code carried by an integer firmware notification
type Code uint8

// Decode validates the payload shape of a raw firmware event and extracts
// its event code. Events without an integer payload are logged with their
// contents and dropped.
func Decode(ev acpi.RawEvent) (Code, bool) {
	switch ev.Payload.Type {
	case acpi.TypeInteger:
		return Code(ev.Payload.Integer & 0xff), true
	default:
		log.Printf("hotkey: discarding %s payload on channel %s\n", ev.Payload, ev.Channel)
		return 0, false
	}
}

package hotkey

import (
	"testing"

	"github.com/qc71/QC71Manager/system/acpi"

	"github.com/stretchr/testify/require"
)

func TestDecodeInteger(t *testing.T) {
	code, ok := Decode(acpi.RawEvent{
		Channel: acpi.Event72,
		Payload: acpi.IntegerPayload(0xcf),
	})
	require.True(t, ok)
	require.Equal(t, Code(0xcf), code)
}

func TestDecodeTruncatesToCodeRange(t *testing.T) {
	code, ok := Decode(acpi.RawEvent{
		Channel: acpi.Event72,
		Payload: acpi.IntegerPayload(0x1b8),
	})
	require.True(t, ok)
	require.Equal(t, Code(0xb8), code)
}

func TestDecodeRejectsNonIntegerPayloads(t *testing.T) {
	payloads := []acpi.Payload{
		acpi.TextPayload("hello"),
		acpi.BytesPayload([]byte{0x01, 0x02}),
		{}, // absent
	}

	for _, p := range payloads {
		_, ok := Decode(acpi.RawEvent{
			Channel: acpi.Event72,
			Payload: p,
		})
		require.False(t, ok, "payload %s must be discarded", p)
	}
}

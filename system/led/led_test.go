package led

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorded struct {
	name       string
	brightness int
}

func backlightDevice(name string, brightness int, notified *[]recorded) *Device {
	return NewDevice(
		name,
		FlagBrightnessHWChanged,
		func() (int, error) { return brightness, nil },
		func(b int) { *notified = append(*notified, recorded{name: name, brightness: b}) },
	)
}

func TestNotifyNoMatchingDevice(t *testing.T) {
	var notified []recorded

	r := NewRegistry()
	r.Register(backlightDevice("platform::mute", 1, &notified))
	r.Register(NewDevice(
		"white:kbd_backlight",
		0, // no hardware-changed capability
		func() (int, error) { return 2, nil },
		func(b int) { notified = append(notified, recorded{brightness: b}) },
	))

	r.NotifyKeyboardBacklightChanged(context.Background())
	require.Empty(t, notified)
}

func TestNotifyEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	r.NotifyKeyboardBacklightChanged(context.Background())
}

func TestNotifySingleMatch(t *testing.T) {
	var notified []recorded

	r := NewRegistry()
	r.Register(backlightDevice("platform::mute", 5, &notified))
	r.Register(backlightDevice("white:kbd_backlight", 2, &notified))

	r.NotifyKeyboardBacklightChanged(context.Background())

	require.Len(t, notified, 1)
	require.Equal(t, "white:kbd_backlight", notified[0].name)
	require.Equal(t, 2, notified[0].brightness)
}

func TestNotifyFirstMatchWins(t *testing.T) {
	var notified []recorded

	r := NewRegistry()
	r.Register(backlightDevice("white:kbd_backlight", 1, &notified))
	r.Register(backlightDevice("rgb:kbd_backlight", 3, &notified))

	r.NotifyKeyboardBacklightChanged(context.Background())

	require.Len(t, notified, 1)
	require.Equal(t, "white:kbd_backlight", notified[0].name)
	require.Equal(t, 1, notified[0].brightness)
}

func TestNotifyReadFailureSkipsNotification(t *testing.T) {
	var notified []recorded

	r := NewRegistry()
	r.Register(NewDevice(
		"white:kbd_backlight",
		FlagBrightnessHWChanged,
		func() (int, error) { return 0, context.DeadlineExceeded },
		func(b int) { notified = append(notified, recorded{brightness: b}) },
	))

	r.NotifyKeyboardBacklightChanged(context.Background())
	require.Empty(t, notified)
}

func TestNotifyInterruptedLockAborts(t *testing.T) {
	var notified []recorded

	r := NewRegistry()
	d := backlightDevice("white:kbd_backlight", 1, &notified)
	r.Register(d)

	// hold the device lock so acquisition must wait, then interrupt
	require.NoError(t, d.acquire(context.Background()))
	defer d.release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.NotifyKeyboardBacklightChanged(ctx)
	require.Empty(t, notified)
}

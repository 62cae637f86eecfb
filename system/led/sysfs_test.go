package led

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeLedDevice(t *testing.T, root, name, brightness string, hwChanged bool) {
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "brightness"), []byte(brightness), 0644))
	if hwChanged {
		// the attribute exists from registration but is unreadable until
		// the first hardware change; only its presence signals the
		// capability
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "brightness_hw_changed"), nil, 0200))
	}
}

func TestRegisterDevicesDetectsCapabilityByPresence(t *testing.T) {
	root, err := ioutil.TempDir("", "led-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(root) })

	writeLedDevice(t, root, "white:kbd_backlight", "2\n", true)
	writeLedDevice(t, root, "input3::capslock", "0\n", false)

	var notified []recorded
	r := NewRegistry()
	registerDevices(r, root, func(name string, brightness int) {
		notified = append(notified, recorded{name: name, brightness: brightness})
	})

	r.NotifyKeyboardBacklightChanged(context.Background())
	require.Equal(t, []recorded{{name: "white:kbd_backlight", brightness: 2}}, notified)
}

func TestRegisterDevicesWithoutCapability(t *testing.T) {
	root, err := ioutil.TempDir("", "led-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(root) })

	writeLedDevice(t, root, "white:kbd_backlight", "2\n", false)

	var notified []recorded
	r := NewRegistry()
	registerDevices(r, root, func(name string, brightness int) {
		notified = append(notified, recorded{name: name, brightness: brightness})
	})

	r.NotifyKeyboardBacklightChanged(context.Background())
	require.Empty(t, notified)
}

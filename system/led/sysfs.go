package led

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const sysfsLedsPath = "/sys/class/leds"

// RegisterSysfsDevices populates the registry from the LED class devices
// exposed under /sys/class/leds. Devices whose directory carries a
// brightness_hw_changed attribute get the hardware-changed capability flag;
// their notification callback re-exports the fresh value through notify.
func RegisterSysfsDevices(r *Registry, notify func(name string, brightness int)) {
	registerDevices(r, sysfsLedsPath, notify)
}

func registerDevices(r *Registry, root string, notify func(name string, brightness int)) {
	entries, err := ioutil.ReadDir(root)
	if err != nil {
		log.Printf("led: cannot enumerate LED devices: %s\n", err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		dir := filepath.Join(root, name)

		var flags uint32
		// the attribute reads as -ENODATA until the first hardware
		// change, so probe for existence rather than a successful read
		if _, err := os.Stat(filepath.Join(dir, "brightness_hw_changed")); err == nil {
			flags |= FlagBrightnessHWChanged
		}

		brightnessPath := filepath.Join(dir, "brightness")
		deviceName := name
		r.Register(NewDevice(
			name,
			flags,
			func() (int, error) {
				b, err := ioutil.ReadFile(brightnessPath)
				if err != nil {
					return 0, err
				}
				return strconv.Atoi(strings.TrimSpace(string(b)))
			},
			func(brightness int) {
				notify(deviceName, brightness)
			},
		))
	}
}

package led

import (
	"context"
	"log"
	"strings"
	"sync"
)

// KbdBacklightSuffix identifies the keyboard backlight among the registered
// indicator devices by name
const KbdBacklightSuffix = ":kbd_backlight"

// Device capability flags
const (
	// FlagBrightnessHWChanged marks devices that report hardware-driven
	// brightness changes
	FlagBrightnessHWChanged uint32 = 1 << 0
)

// Device is one brightness-controllable indicator device. Brightness access
// is guarded by a per-device lock whose acquisition can be interrupted via
// context.
type Device struct {
	name      string
	flags     uint32
	sem       chan struct{}
	read      func() (int, error)
	hwChanged func(brightness int)

	brightness int
}

// NewDevice constructs a device with the given hardware brightness reader
// and hardware-changed notification callback
func NewDevice(name string, flags uint32, read func() (int, error), hwChanged func(brightness int)) *Device {
	return &Device{
		name:      name,
		flags:     flags,
		sem:       make(chan struct{}, 1),
		read:      read,
		hwChanged: hwChanged,
	}
}

// Name returns the device name
func (d *Device) Name() string {
	return d.name
}

// Flags returns the capability flags
func (d *Device) Flags() uint32 {
	return d.flags
}

// acquire takes the per-device lock, aborting if the context is cancelled
func (d *Device) acquire(haltCtx context.Context) error {
	select {
	case d.sem <- struct{}{}:
		return nil
	case <-haltCtx.Done():
		return haltCtx.Err()
	}
}

func (d *Device) release() {
	<-d.sem
}

// updateBrightness re-reads the brightness from hardware. Callers must hold
// the device lock.
func (d *Device) updateBrightness() (int, error) {
	v, err := d.read()
	if err != nil {
		return 0, err
	}
	d.brightness = v
	return v, nil
}

// Registry is the injected collection of currently registered indicator
// devices. The list lock is held for reading while scanning.
type Registry struct {
	mu      sync.RWMutex
	devices []*Device
}

// NewRegistry returns an empty indicator device registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a device to the registry
func (r *Registry) Register(d *Device) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices = append(r.devices, d)
}

// NotifyKeyboardBacklightChanged scans the registered devices for the first
// one that reports hardware-driven changes and whose name carries the
// keyboard backlight suffix, re-reads its brightness under its lock and
// fires its hardware-changed notification with the fresh value. At most one
// device is notified; no match is a silent no-op.
func (r *Registry) NotifyKeyboardBacklightChanged(haltCtx context.Context) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.devices {
		if d.flags&FlagBrightnessHWChanged == 0 {
			continue
		}
		if !strings.HasSuffix(d.name, KbdBacklightSuffix) {
			continue
		}

		if err := d.acquire(haltCtx); err != nil {
			// lock acquisition interrupted; abort without notifying
			break
		}
		if v, err := d.updateBrightness(); err == nil {
			d.hwChanged(v)
		} else {
			log.Printf("led: cannot update brightness of %s: %s\n", d.name, err)
		}
		d.release()
		break
	}
}

package controller

import (
	"fmt"
	"log"

	"github.com/qc71/QC71Manager/system/acpi"
	"github.com/qc71/QC71Manager/system/ec"
	"github.com/qc71/QC71Manager/system/fan"
	"github.com/qc71/QC71Manager/system/fnlock"
	"github.com/qc71/QC71Manager/system/hotkey"
	"github.com/qc71/QC71Manager/system/input"
	"github.com/qc71/QC71Manager/system/led"
	"github.com/qc71/QC71Manager/system/persist"
	"github.com/qc71/QC71Manager/system/rfkill"
	"github.com/qc71/QC71Manager/util"

	"github.com/pkg/errors"
)

// RunConfig contains the start up configuration for the controller
type RunConfig struct {
	DryRun     bool
	Model      hotkey.Model
	StatePath  string
	ConfigPath string
	NotifierCh chan util.Notification
}

// Dependencies contains the resources the controller loop operates on
type Dependencies struct {
	EC             ec.Control
	Fan            *fan.Control
	FnLock         *fnlock.Control
	Leds           *led.Registry
	Dispatcher     *hotkey.Dispatcher
	Emitter        *input.Emitter
	ConfigRegistry persist.ConfigRegistry

	attrCh  chan string
	stateCh chan struct{}
}

// attrNotifier bridges the dispatcher's fire-and-forget attribute
// notifications into the controller loop
type attrNotifier struct {
	ch chan<- string
}

var _ hotkey.AttributeNotifier = attrNotifier{}

func (a attrNotifier) NotifyChanged(attribute string) {
	select {
	case a.ch <- attribute:
	default:
		log.Printf("[controller] dropping attribute notification: %s\n", attribute)
	}
}

// GetDependencies assembles the hardware resources, real or dry. A failure
// to set up the input device is not fatal: the controller continues with
// notification-only support.
func GetDependencies(conf RunConfig) (*Dependencies, error) {
	var ecCtrl ec.Control
	var registry persist.ConfigRegistry
	var wifi rfkill.StateReader
	var err error

	if conf.DryRun {
		ecCtrl = ec.NewDryControl()
		registry, err = persist.NewDryConfigHelper()
		wifi = rfkill.NewDryReader()
	} else {
		ecCtrl, err = ec.NewDebugfsControl()
		if err != nil {
			return nil, errors.Wrap(err, "[controller] cannot open EC control")
		}
		registry, err = persist.NewFileConfigHelper(conf.StatePath)
		wifi = rfkill.NewSysfsReader()
	}
	if err != nil {
		return nil, errors.Wrap(err, "[controller] cannot initialize config registry")
	}

	fanCtrl, err := fan.NewControl(ecCtrl)
	if err != nil {
		return nil, err
	}
	fnLockCtrl, err := fnlock.NewControl(ecCtrl)
	if err != nil {
		return nil, err
	}

	registry.Register(fanCtrl)
	registry.Register(fnLockCtrl)

	leds := led.NewRegistry()
	if conf.DryRun {
		leds.Register(led.NewDevice(
			"qc71::kbd_backlight",
			led.FlagBrightnessHWChanged,
			func() (int, error) { return 1, nil },
			func(brightness int) {
				log.Printf("[dry run] led: keyboard backlight changed to %d\n", brightness)
			},
		))
	} else {
		led.RegisterSysfsDevices(leds, func(name string, brightness int) {
			if conf.NotifierCh == nil {
				return
			}
			select {
			case conf.NotifierCh <- util.Notification{
				Message: fmt.Sprintf("Keyboard backlight changed to %d", brightness),
			}:
			default:
			}
		})
	}

	attrCh := make(chan string, 10)
	stateCh := make(chan struct{}, 1)

	dispatcher, err := hotkey.NewDispatcher(hotkey.Config{
		Model:     conf.Model,
		Fan:       fanCtrl,
		FnLock:    fnLockCtrl,
		Backlight: leds,
		Attr:      attrNotifier{ch: attrCh},
		StateChanged: func() {
			select {
			case stateCh <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		return nil, err
	}

	var emitter *input.Emitter
	var dev input.Device
	if conf.DryRun {
		dev = input.NewDryDevice()
	} else {
		dev, err = input.NewUinputDevice()
	}
	if err != nil {
		// partial-failure tolerance: keep dispatching side effects and
		// notifications without re-emitting input events
		log.Printf("[controller] cannot set up input device, continuing with notification-only support: %s\n", err)
	} else {
		emitter, err = input.NewEmitter(dev, wifi)
		if err != nil {
			log.Printf("[controller] cannot set up input emitter: %s\n", err)
		}
	}

	return &Dependencies{
		EC:             ecCtrl,
		Fan:            fanCtrl,
		FnLock:         fnLockCtrl,
		Leds:           leds,
		Dispatcher:     dispatcher,
		Emitter:        emitter,
		ConfigRegistry: registry,

		attrCh:  attrCh,
		stateCh: stateCh,
	}, nil
}

// Listeners returns one event listener per firmware channel
func Listeners(conf RunConfig) map[acpi.Channel]acpi.Listener {
	listeners := make(map[acpi.Channel]acpi.Listener, len(acpi.Channels))
	for _, channel := range acpi.Channels {
		if conf.DryRun {
			listeners[channel] = acpi.NewDryListener(channel)
		} else {
			listeners[channel] = acpi.NewSocketListener(channel)
		}
	}
	return listeners
}

package controller

import (
	"context"
	"log"
	"time"

	"github.com/qc71/QC71Manager/system/acpi"
	"github.com/qc71/QC71Manager/system/hotkey"
	"github.com/qc71/QC71Manager/system/input"
	"github.com/qc71/QC71Manager/system/persist"
	"github.com/qc71/QC71Manager/util"

	"github.com/pkg/errors"
)

const (
	// PersistDelay defines how long the Controller should wait before
	// saving state after the last mutation
	PersistDelay = time.Second
)

const (
	fnPersistConfigs = iota // for debouncing persisting of component state
	fnApplyConfigs          // for loading and re-applying configurations
)

type workQueue struct {
	noisy chan<- interface{}
	clean <-chan util.DebounceEvent
}

// Config contains the configurations for the controller
type Config struct {
	Dispatcher *hotkey.Dispatcher
	// Emitter may be nil: the controller then runs with notification-only
	// support (channels installed but no input re-emission)
	Emitter   *input.Emitter
	Listeners map[acpi.Channel]acpi.Listener
	Registry  persist.ConfigRegistry

	NotifierCh chan<- util.Notification
	// ConfigPath, when set, is watched and re-applies configurations on change
	ConfigPath string
}

// Controller contains configuration for the controller loop
type Controller struct {
	Config

	workQueueCh map[uint32]workQueue
	errorCh     chan error

	eventCh  map[acpi.Channel]chan acpi.RawEvent
	attrCh   chan string
	stateCh  chan struct{}
	reloadCh chan struct{}
}

func New(conf Config, dep *Dependencies) (*Controller, error) {
	if conf.Dispatcher == nil {
		return nil, errors.New("[controller] nil Dispatcher is invalid")
	}
	if len(conf.Listeners) == 0 {
		return nil, errors.New("[controller] empty Listeners is invalid")
	}
	if conf.Registry == nil {
		return nil, errors.New("[controller] nil Registry is invalid")
	}

	eventCh := make(map[acpi.Channel]chan acpi.RawEvent, len(conf.Listeners))
	for channel := range conf.Listeners {
		// one buffered channel per firmware event channel keeps delivery
		// serial within a channel but concurrent across channels
		eventCh[channel] = make(chan acpi.RawEvent, 1)
	}

	return &Controller{
		Config: conf,

		workQueueCh: make(map[uint32]workQueue, 2),
		errorCh:     make(chan error),

		eventCh:  eventCh,
		attrCh:   dep.attrCh,
		stateCh:  dep.stateCh,
		reloadCh: make(chan struct{}, 1),
	}, nil
}

func (c *Controller) String() string {
	return "Controller"
}

func (c *Controller) initialize(haltCtx context.Context) error {
	for channel, listener := range c.Config.Listeners {
		if err := listener.Listen(haltCtx, c.eventCh[channel]); err != nil {
			return errors.Wrapf(err, "[controller] error installing listener for %s", channel)
		}
		log.Printf("[controller] listener installed for %s\n", channel)
	}

	if c.Config.ConfigPath != "" {
		if err := util.WatchFile(haltCtx, c.Config.ConfigPath, c.reloadCh); err != nil {
			log.Printf("[controller] cannot watch %s: %s\n", c.Config.ConfigPath, err)
		}
	}

	in, out := util.Debounce(haltCtx, PersistDelay)
	c.workQueueCh[fnPersistConfigs] = workQueue{
		noisy: in,
		clean: out,
	}

	in, out = util.PassThrough(haltCtx)
	c.workQueueCh[fnApplyConfigs] = workQueue{
		noisy: in,
		clean: out,
	}

	// load and apply configurations
	c.workQueueCh[fnApplyConfigs].noisy <- struct{}{}

	return nil
}

// Run will start the controller loop and block until context cancel, or an
// error has occurred
func (c *Controller) Run(haltCtx context.Context) error {
	ctx, cancel := context.WithCancel(haltCtx)
	defer cancel()

	log.Println("[controller] starting controller loop")

	if err := c.initialize(ctx); err != nil {
		return errors.Wrap(err, "[controller] error initializing")
	}

	// defined in controller_loop.go
	for channel := range c.eventCh {
		go c.handleFirmwareEvents(ctx, channel)
	}
	go c.handleAttrNotifications(ctx)
	go c.handleStateChanges(ctx)
	go c.handleConfigReload(ctx)
	go c.handleWorkQueue(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-c.errorCh:
			log.Printf("[controller] unrecoverable error in controller loop: %v\n", err)
			return err
		}
	}
}

// Serve satisfies suture.Service
func (c *Controller) Serve(haltCtx context.Context) error {
	return c.Run(haltCtx)
}

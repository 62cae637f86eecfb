package controller

import (
	"context"
	"fmt"
	"log"

	"github.com/qc71/QC71Manager/system/acpi"
	"github.com/qc71/QC71Manager/system/hotkey"
	"github.com/qc71/QC71Manager/util"

	"github.com/pkg/errors"
)

// handleFirmwareEvents drains one firmware event channel. Delivery is
// synchronous and serial per channel: decode, dispatch (side effects run to
// completion) and optionally re-emit, in that order.
func (c *Controller) handleFirmwareEvents(haltCtx context.Context, channel acpi.Channel) {
	for {
		select {
		case ev := <-c.eventCh[channel]:
			code, ok := hotkey.Decode(ev)
			if !ok {
				continue
			}
			doReport := c.Dispatcher.Dispatch(haltCtx, ev.Channel, code)
			if doReport && c.Emitter != nil {
				c.Emitter.Report(code)
			}
		case <-haltCtx.Done():
			log.Printf("[controller] exiting handleFirmwareEvents for %s\n", channel)
			return
		}
	}
}

// handleAttrNotifications forwards attribute-change notifications raised by
// the dispatcher to the user notifier
func (c *Controller) handleAttrNotifications(haltCtx context.Context) {
	for {
		select {
		case attr := <-c.attrCh:
			log.Printf("[controller] attribute changed: %s\n", attr)
			if c.NotifierCh != nil {
				select {
				case c.NotifierCh <- util.Notification{
					Message: fmt.Sprintf("%s changed", attr),
				}:
				default:
					// the notifier is best effort; never stall dispatch
				}
			}
		case <-haltCtx.Done():
			log.Println("[controller] exiting handleAttrNotifications")
			return
		}
	}
}

// handleStateChanges debounces persisting after side effects mutate state
func (c *Controller) handleStateChanges(haltCtx context.Context) {
	for {
		select {
		case <-c.stateCh:
			c.workQueueCh[fnPersistConfigs].noisy <- struct{}{}
		case <-haltCtx.Done():
			log.Println("[controller] exiting handleStateChanges")
			return
		}
	}
}

func (c *Controller) handleConfigReload(haltCtx context.Context) {
	for {
		select {
		case <-c.reloadCh:
			log.Println("[controller] configuration file changed, re-applying")
			c.workQueueCh[fnApplyConfigs].noisy <- struct{}{}
		case <-haltCtx.Done():
			log.Println("[controller] exiting handleConfigReload")
			return
		}
	}
}

func (c *Controller) handleWorkQueue(haltCtx context.Context) {
	for {
		select {
		case <-c.workQueueCh[fnPersistConfigs].clean:
			if err := c.Config.Registry.Save(); err != nil {
				c.errorCh <- errors.Wrap(err, "[controller] error saving state")
				return
			}

		case <-c.workQueueCh[fnApplyConfigs].clean:
			// load state from the backing storage and try to reapply
			if err := c.Config.Registry.Load(); err != nil {
				c.errorCh <- errors.Wrap(err, "[controller] error loading state")
				return
			}
			if err := c.Config.Registry.Apply(); err != nil {
				c.errorCh <- errors.Wrap(err, "[controller] error applying state")
				return
			}

		case <-haltCtx.Done():
			log.Println("[controller] exiting handleWorkQueue")
			return
		}
	}
}

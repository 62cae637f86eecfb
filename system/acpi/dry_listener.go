package acpi

import (
	"context"
	"log"
)

type dryListener struct {
	channel Channel
}

var _ Listener = &dryListener{}

// NewDryListener returns a Listener without actual IOs
func NewDryListener(channel Channel) Listener {
	return &dryListener{
		channel: channel,
	}
}

func (d *dryListener) Listen(haltCtx context.Context, eventCh chan<- RawEvent) error {
	log.Printf("[dry run] acpi: installing no-op listener for %s\n", d.channel)
	return nil
}

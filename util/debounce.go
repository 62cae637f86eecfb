package util

import (
	"context"
	"time"
)

// DebounceEvent contains the last event fired to the input channel
type DebounceEvent struct {
	Counter int64
	Data    interface{}
}

// Debounce returns two channels for input and output. Values sent to the
// noisy channel are released to the clean channel once no new value arrived
// for the wait duration, together with how many were coalesced.
func Debounce(haltCtx context.Context, wait time.Duration) (chan interface{}, chan DebounceEvent) {
	noisy := make(chan interface{})
	clean := make(chan DebounceEvent, 1) // do not block our goroutine

	go func() {
		ticker := time.NewTicker(wait)
		defer ticker.Stop()

		var lastTime time.Time
		var counter int64
		var data interface{}

		for {
			select {
			case data = <-noisy:
				lastTime = time.Now()
				counter++
			case <-ticker.C:
				if !lastTime.IsZero() && time.Since(lastTime) > wait {
					clean <- DebounceEvent{
						Counter: counter,
						Data:    data,
					}

					lastTime = time.Time{}
					counter = 0
				}
			case <-haltCtx.Done():
				return
			}
		}
	}()

	return noisy, clean
}

// PassThrough returns two channels for input and output, forwarding every
// value immediately with a counter of one
func PassThrough(haltCtx context.Context) (chan interface{}, chan DebounceEvent) {
	noisy := make(chan interface{})
	clean := make(chan DebounceEvent, 1)

	go func() {
		for {
			select {
			case data := <-noisy:
				clean <- DebounceEvent{
					Counter: 1,
					Data:    data,
				}
			case <-haltCtx.Done():
				return
			}
		}
	}()

	return noisy, clean
}

package acpi

import (
	"bufio"
	"context"
	"log"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const acpidSocketPath = "/var/run/acpid.socket"

// Listener delivers raw firmware events for one channel to eventCh until the
// context is cancelled. Implementations must not block the caller once
// Listen returns.
type Listener interface {
	Listen(haltCtx context.Context, eventCh chan<- RawEvent) error
}

type socketListener struct {
	channel Channel
	path    string
}

// NewSocketListener returns a Listener that subscribes to the acpid
// multiplexer socket and filters events belonging to the given channel.
func NewSocketListener(channel Channel) Listener {
	return &socketListener{
		channel: channel,
		path:    acpidSocketPath,
	}
}

func (s *socketListener) Listen(haltCtx context.Context, eventCh chan<- RawEvent) error {
	conn, err := net.Dial("unix", s.path)
	if err != nil {
		return errors.Wrap(err, "acpi: cannot connect to acpid socket")
	}

	go func() {
		<-haltCtx.Done()
		conn.Close()
	}()

	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			ev, ok := s.parse(scanner.Text())
			if !ok {
				continue
			}
			select {
			case eventCh <- ev:
			case <-haltCtx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && haltCtx.Err() == nil {
			log.Printf("acpi: %s listener read error: %s\n", s.channel, err)
		}
	}()

	return nil
}

// parse extracts a RawEvent from one acpid event line. The line format is
// "<class> <guid> <type> [<data>]"; data is the hexadecimal notification
// payload. Events for other GUIDs are skipped.
func (s *socketListener) parse(line string) (RawEvent, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return RawEvent{}, false
	}
	if !strings.EqualFold(fields[1], string(s.channel)) {
		return RawEvent{}, false
	}
	if len(fields) < 4 {
		return RawEvent{Channel: s.channel}, true
	}
	value, err := strconv.ParseUint(fields[3], 16, 64)
	if err != nil {
		return RawEvent{
			Channel: s.channel,
			Payload: TextPayload(fields[3]),
		}, true
	}
	return RawEvent{
		Channel: s.channel,
		Payload: IntegerPayload(value),
	}, true
}

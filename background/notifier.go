package background

import (
	"context"
	"log"

	"github.com/qc71/QC71Manager/util"
)

// Notifier drains user-facing notifications and surfaces them through the
// log sink
type Notifier struct {
	C chan util.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{
		C: make(chan util.Notification, 10),
	}
}

func (n *Notifier) String() string {
	return "Notifier"
}

func (n *Notifier) Serve(haltCtx context.Context) error {
	log.Println("[notifier] starting notify loop")
	for {
		select {
		case msg := <-n.C:
			if msg.Title != "" {
				log.Printf("[notifier] %s: %s\n", msg.Title, msg.Message)
			} else {
				log.Printf("[notifier] %s\n", msg.Message)
			}
		case <-haltCtx.Done():
			log.Println("[notifier] exiting notify loop")
			return nil
		}
	}
}

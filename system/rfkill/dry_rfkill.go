package rfkill

import "log"

type dryReader struct{}

var _ StateReader = &dryReader{}

// NewDryReader returns a StateReader without actual IOs; the radio always
// reads as enabled
func NewDryReader() StateReader {
	log.Println("[dry run] rfkill: initializing state reader without IOs")
	return &dryReader{}
}

func (d *dryReader) WifiState() (int, error) {
	return 1, nil
}

package rfkill

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const sysfsRfkillPath = "/sys/class/rfkill"

// StateReader reads the radio kill-switch hardware state: 1 when the radio
// is enabled, 0 when blocked
type StateReader interface {
	WifiState() (int, error)
}

type sysfsReader struct {
	path string
}

var _ StateReader = &sysfsReader{}

// NewSysfsReader returns a StateReader backed by the rfkill class devices
func NewSysfsReader() StateReader {
	return &sysfsReader{
		path: sysfsRfkillPath,
	}
}

// WifiState scans the rfkill devices for the first wlan entry and reports
// whether it is unblocked
func (r *sysfsReader) WifiState() (int, error) {
	entries, err := ioutil.ReadDir(r.path)
	if err != nil {
		return 0, errors.Wrap(err, "rfkill: cannot enumerate devices")
	}

	for _, entry := range entries {
		dir := filepath.Join(r.path, entry.Name())

		kind, err := ioutil.ReadFile(filepath.Join(dir, "type"))
		if err != nil || strings.TrimSpace(string(kind)) != "wlan" {
			continue
		}

		soft, err := ioutil.ReadFile(filepath.Join(dir, "soft"))
		if err != nil {
			return 0, errors.Wrap(err, "rfkill: cannot read soft block state")
		}
		hard, err := ioutil.ReadFile(filepath.Join(dir, "hard"))
		if err != nil {
			return 0, errors.Wrap(err, "rfkill: cannot read hard block state")
		}

		if strings.TrimSpace(string(soft)) == "0" && strings.TrimSpace(string(hard)) == "0" {
			return 1, nil
		}
		return 0, nil
	}

	return 0, errors.New("rfkill: no wlan device found")
}
